package types

import (
	"fmt"
	"strings"
)

// --------------------------------------------
// Configuration surface: closed enumerations
// --------------------------------------------

type Domain string

const (
	DomainTech            Domain = "Tech"
	DomainManagerial      Domain = "Managerial"
	DomainHR              Domain = "HR"
	DomainGroupDiscussion Domain = "Group Discussion"
	DomainGeneral         Domain = "General"
	DomainSales           Domain = "Sales"
	DomainCustomerSupport Domain = "Customer Support"
)

var Domains = []Domain{
	DomainTech,
	DomainManagerial,
	DomainHR,
	DomainGroupDiscussion,
	DomainGeneral,
	DomainSales,
	DomainCustomerSupport,
}

type RoundType string

const (
	RoundTechnical       RoundType = "Technical Round"
	RoundHR              RoundType = "HR Round"
	RoundManagerial      RoundType = "Managerial Round"
	RoundGroupDiscussion RoundType = "Group Discussion"
	RoundFinal           RoundType = "Final Round"
	RoundScreening       RoundType = "Screening Round"
	RoundGeneral         RoundType = "General"
)

var RoundTypes = []RoundType{
	RoundTechnical,
	RoundHR,
	RoundManagerial,
	RoundGroupDiscussion,
	RoundFinal,
	RoundScreening,
	RoundGeneral,
}

type FeedbackTone string

const (
	ToneProfessional FeedbackTone = "Professional"
	ToneEncouraging  FeedbackTone = "Encouraging"
	ToneCritical     FeedbackTone = "Critical"
)

var FeedbackTones = []FeedbackTone{ToneProfessional, ToneEncouraging, ToneCritical}

// AnalysisConfig only changes prompt phrasing. Parsing never looks at it.
type AnalysisConfig struct {
	Domain       Domain       `json:"domain" yaml:"domain"`
	RoundType    RoundType    `json:"round_type" yaml:"round_type"`
	FeedbackTone FeedbackTone `json:"feedback_tone" yaml:"feedback_tone"`
}

func DefaultAnalysisConfig() AnalysisConfig {
	return AnalysisConfig{
		Domain:       DomainGeneral,
		RoundType:    RoundGeneral,
		FeedbackTone: ToneProfessional,
	}
}

// WithDefaults fills empty fields with the defaults. Unknown values are kept.
func (c AnalysisConfig) WithDefaults() AnalysisConfig {
	def := DefaultAnalysisConfig()
	if strings.TrimSpace(string(c.Domain)) == "" {
		c.Domain = def.Domain
	}
	if strings.TrimSpace(string(c.RoundType)) == "" {
		c.RoundType = def.RoundType
	}
	if strings.TrimSpace(string(c.FeedbackTone)) == "" {
		c.FeedbackTone = def.FeedbackTone
	}
	return c
}

// Validate rejects values outside the enumerations. Empty fields are allowed
// and resolve to defaults.
func (c AnalysisConfig) Validate() error {
	c = c.WithDefaults()
	if !contains(Domains, c.Domain) {
		return fmt.Errorf("unknown domain %q", c.Domain)
	}
	if !contains(RoundTypes, c.RoundType) {
		return fmt.Errorf("unknown round type %q", c.RoundType)
	}
	if !contains(FeedbackTones, c.FeedbackTone) {
		return fmt.Errorf("unknown feedback tone %q", c.FeedbackTone)
	}
	return nil
}

func contains[T comparable](values []T, v T) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}

// --------------------------------------------
// Batch input row (spreadsheet import)
// --------------------------------------------
type BatchItem struct {
	ID         string         `json:"id"`
	Transcript string         `json:"transcript"`
	Config     AnalysisConfig `json:"config"`
}
