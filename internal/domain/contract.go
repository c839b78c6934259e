// Package domain contains core business types and interfaces.
//
// This file defines the contract types accepted for analysis and the handle
// to a file staged for upload.
package domain

import (
	"strings"
)

// =============================================================================
// Contract Type
// =============================================================================

// ContractType identifies which body of Saudi regulation a contract is
// checked against.
type ContractType string

const (
	ContractTypeEmployment  ContractType = "employment"
	ContractTypeRental      ContractType = "rental"
	ContractTypeSales       ContractType = "sales"
	ContractTypePartnership ContractType = "partnership"
)

// DefaultContractType is selected when a session starts.
const DefaultContractType = ContractTypeEmployment

// ContractTypes lists every supported type in display order.
var ContractTypes = []ContractType{
	ContractTypeEmployment,
	ContractTypeRental,
	ContractTypeSales,
	ContractTypePartnership,
}

// String returns the string representation of the contract type.
func (t ContractType) String() string {
	return string(t)
}

// IsValid returns true if the type is a recognized value.
func (t ContractType) IsValid() bool {
	switch t {
	case ContractTypeEmployment, ContractTypeRental, ContractTypeSales, ContractTypePartnership:
		return true
	}
	return false
}

// ParseContractType validates s as a contract type.
func ParseContractType(s string) (ContractType, error) {
	t := ContractType(strings.ToLower(strings.TrimSpace(s)))
	if !t.IsValid() {
		return "", Invalid("contract.type", "unsupported contract type")
	}
	return t, nil
}

// =============================================================================
// Risk Level
// =============================================================================

// RiskLevel grades a violation, missing clause or risk.
type RiskLevel string

const (
	RiskHigh   RiskLevel = "high"
	RiskMedium RiskLevel = "medium"
	RiskLow    RiskLevel = "low"
)

// String returns the string representation of the risk level.
func (r RiskLevel) String() string {
	return string(r)
}

// IsValid returns true if the level is a recognized value.
func (r RiskLevel) IsValid() bool {
	switch r {
	case RiskHigh, RiskMedium, RiskLow:
		return true
	}
	return false
}

// ParseRiskLevel accepts the labels the analysis backend has been seen to
// send ("high", "High", "High Risk", "medium risk"). Anything else yields the
// empty level, which renders with neutral styling.
func ParseRiskLevel(s string) RiskLevel {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.TrimSuffix(s, " risk")
	switch RiskLevel(s) {
	case RiskHigh, RiskMedium, RiskLow:
		return RiskLevel(s)
	}
	return ""
}

// =============================================================================
// Uploaded File
// =============================================================================

// AcceptedExtensions is the file picker's advisory filter. It is not
// enforced when a file is staged.
var AcceptedExtensions = []string{".pdf", ".docx", ".txt"}

// UploadedFile is the handle to a user-selected file. The bytes live in
// the staging store under Key.
type UploadedFile struct {
	Name        string // Original filename as sent by the browser
	Size        int64  // Size in bytes
	ContentType string // MIME type
	Key         string // Staging storage key
}

// Extension returns the lower-cased filename extension including the dot.
func (f *UploadedFile) Extension() string {
	i := strings.LastIndex(f.Name, ".")
	if i < 0 {
		return ""
	}
	return strings.ToLower(f.Name[i:])
}
