// Package domain holds DTOs for invalidation http and service contracts
package domain

// InvalidateInput selects which tagged cache entries to evict
type InvalidateInput struct {
	Domain     string `json:"domain" validate:"required,oneof=i18n content product all" example:"i18n"`
	Locale     string `json:"locale,omitempty" validate:"omitempty,min=2,max=12" example:"en"`
	Entity     string `json:"entity,omitempty" validate:"omitempty,printascii,max=32" example:"critical"`
	Identifier string `json:"identifier,omitempty" validate:"omitempty,printascii,max=128" example:"spring-launch"`
}

// InvalidateResult reports one invalidation run
type InvalidateResult struct {
	Success         bool     `json:"success" example:"true"`
	RunID           string   `json:"run_id" example:"6c1a8a2e-9a57-4c4f-9a7e-2f1f4ab3c001"`
	InvalidatedTags []string `json:"invalidated_tags"`
	Evicted         int      `json:"evicted" example:"7"`
	Errors          []string `json:"errors,omitempty"`
}

// Usage documents the endpoint for unauthenticated GETs
type Usage struct {
	Method  string            `json:"method" example:"POST"`
	Auth    string            `json:"auth" example:"Bearer token from CACHE_INVALIDATION_SECRET"`
	Domains map[string]string `json:"domains"`
	Example InvalidateInput   `json:"example"`
}
