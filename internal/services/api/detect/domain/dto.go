// Package domain holds DTOs for detect http and service contracts
package domain

import "lingo/internal/core/locale"

// DetectInput carries the language signals for one resolution
// header fallbacks fill accept_language and country when omitted
type DetectInput struct {
	Subject        string `json:"subject,omitempty" validate:"omitempty,min=1,max=200" example:"visitor-42"`
	AcceptLanguage string `json:"accept_language,omitempty" example:"zh-CN,zh;q=0.9,en;q=0.8"`
	Country        string `json:"country,omitempty" validate:"omitempty,len=2" example:"CN"`
	Override       string `json:"override,omitempty" example:"zh"`
}

// DetectResult is the outcome of one resolution
type DetectResult struct {
	Locale     locale.Locale `json:"locale" example:"zh"`
	Source     locale.Source `json:"source" example:"browser"`
	Confidence float64       `json:"confidence" example:"0.8"`
	Recorded   bool          `json:"recorded" example:"true"`
}
