package models

import (
	"math"
	"strings"

	"github.com/sengkeat-dex/Tokenize/fault"
)

type AssetKind string

const (
	KindEquity               AssetKind = "equity"
	KindDebt                 AssetKind = "debt"
	KindRealEstate           AssetKind = "real_estate"
	KindCommodity            AssetKind = "commodity"
	KindFund                 AssetKind = "fund"
	KindIntellectualProperty AssetKind = "intellectual_property"
	KindArt                  AssetKind = "art"
	KindCarbonCredit         AssetKind = "carbon_credit"
	KindOther                AssetKind = "other"
)

// AssetType is comparable: two Other types are equal only when their
// labels match.
type AssetType struct {
	Kind  AssetKind
	Label string
}

var (
	Equity               = AssetType{Kind: KindEquity}
	Debt                 = AssetType{Kind: KindDebt}
	RealEstate           = AssetType{Kind: KindRealEstate}
	Commodity            = AssetType{Kind: KindCommodity}
	Fund                 = AssetType{Kind: KindFund}
	IntellectualProperty = AssetType{Kind: KindIntellectualProperty}
	Art                  = AssetType{Kind: KindArt}
	CarbonCredit         = AssetType{Kind: KindCarbonCredit}
)

func Other(label string) AssetType {
	return AssetType{Kind: KindOther, Label: label}
}

func (t AssetType) String() string {
	if t.Kind == KindOther && t.Label != "" {
		return string(KindOther) + ":" + t.Label
	}
	return string(t.Kind)
}

var assetKinds = foldIndex(KindEquity, KindDebt, KindRealEstate, KindCommodity, KindFund,
	KindIntellectualProperty, KindArt, KindCarbonCredit, KindOther)

// ParseAssetType never fails: text outside the closed set becomes an
// Other type labelled with that text. Codes match case-insensitively with
// or without underscores, so "real_estate" and "RealEstate" agree. Empty
// text is the zero AssetType.
func ParseAssetType(s string) AssetType {
	s = strings.TrimSpace(s)
	if s == "" {
		return AssetType{}
	}
	if kind, ok := assetKinds[foldCode(s)]; ok {
		return AssetType{Kind: kind}
	}
	if len(s) >= len(KindOther)+1 && strings.EqualFold(s[:len(KindOther)+1], string(KindOther)+":") {
		return Other(s[len(KindOther)+1:])
	}
	return Other(s)
}

func (t AssetType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *AssetType) UnmarshalText(text []byte) error {
	*t = ParseAssetType(string(text))
	return nil
}

type ComplianceStatus string

const (
	Pending     ComplianceStatus = "pending"
	UnderReview ComplianceStatus = "under_review"
	Rejected    ComplianceStatus = "rejected"
	Approved    ComplianceStatus = "approved"
)

var complianceStatuses = foldIndex(Pending, UnderReview, Rejected, Approved)

func ParseComplianceStatus(s string) (ComplianceStatus, error) {
	if status, ok := complianceStatuses[foldCode(s)]; ok {
		return status, nil
	}
	return "", fault.ErrInvalidComplianceStatus
}

// UnmarshalText accepts empty text as the zero status.
func (s *ComplianceStatus) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		*s = ""
		return nil
	}
	status, err := ParseComplianceStatus(string(text))
	if err != nil {
		return err
	}
	*s = status
	return nil
}

type Asset struct {
	ID               string            `json:"id"`
	Name             string            `json:"name"`
	AssetType        AssetType         `json:"asset_type"`
	Value            float64           `json:"value"`
	Owner            string            `json:"owner"`
	Metadata         map[string]string `json:"metadata"`
	ComplianceStatus ComplianceStatus  `json:"compliance_status"`
	CreatedAt        int64             `json:"created_at"`
	UpdatedAt        int64             `json:"updated_at"`
}

// Clone returns a copy that shares no mutable state with a.
func (a Asset) Clone() Asset {
	if a.Metadata != nil {
		metadata := make(map[string]string, len(a.Metadata))
		for k, v := range a.Metadata {
			metadata[k] = v
		}
		a.Metadata = metadata
	}
	return a
}

func (a Asset) Validate() error {
	if a.AssetType.Kind == "" {
		return fault.ErrMissingAssetType
	}
	if a.Value < 0 || math.IsNaN(a.Value) || math.IsInf(a.Value, 0) {
		return fault.ErrInvalidAssetValue
	}
	if a.UpdatedAt < a.CreatedAt {
		return fault.ErrInvalidTimestamps
	}
	return nil
}
