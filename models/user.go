package models

import (
	"fmt"

	english "github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	entranslations "github.com/go-playground/validator/v10/translations/en"
	"github.com/leebenson/conform"
)

// Reward status literals. User.RewardSent is the authoritative current
// status; the rewards table is history only.
const (
	RewardYes = "YES"
	RewardNo  = "NO"
)

func IsValidRewardStatus(s string) bool {
	return s == RewardYes || s == RewardNo
}

// User is a submitted entrant awaiting (or past) a reward payout.
// Created by the public submission form, mutated only by the reward
// handler flipping RewardSent.
type User struct {
	Model
	Name             string `json:"name" conform:"trim" binding:"required,min=2"`
	Telephone        string `json:"telephone" conform:"trim" binding:"required"`
	Occupation       string `json:"occupation" conform:"trim"`
	QRSerialNumber   string `json:"qrSerialNumber" conform:"trim"`
	PumpSerialNumber string `json:"pumpSerialNumber" conform:"trim"`
	UpiID            string `json:"upiId" conform:"trim"`
	AccountNumber    string `json:"accountNumber" conform:"trim"`
	IFSC             string `json:"ifsc" conform:"trim,upper"`
	BeneficiaryName  string `json:"beneficiaryName" conform:"trim"`
	RewardSent       string `json:"rewardSent" gorm:"default:NO;index"`
}

var (
	validate  *validator.Validate
	translate ut.Translator
)

func init() {
	validate = validator.New()
	validate.SetTagName("binding")
	en := english.New()
	uni := ut.New(en, en)
	translate, _ = uni.GetTranslator("en")
	_ = entranslations.RegisterDefaultTranslations(validate, translate)
}

// ValidateStruct trims whitespace in place and returns translated
// validation errors, one per failing field.
func ValidateStruct(req interface{}) []error {
	if err := validateWhiteSpaces(req); err != nil {
		return []error{err}
	}
	return translateError(validate.Struct(req))
}

func validateWhiteSpaces(data interface{}) error {
	return conform.Strings(data)
}

func translateError(err error) (errs []error) {
	if err == nil {
		return nil
	}
	validatorErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []error{err}
	}
	for _, e := range validatorErrs {
		errs = append(errs, fmt.Errorf("%s", e.Translate(translate)))
	}
	return errs
}
