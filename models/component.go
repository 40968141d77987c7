package models

// Component is one row of the tokenization components table.
type Component struct {
	ID         int64  `db:"id" json:"id"`
	MainType   string `db:"main_type" json:"main_type"`
	SubType    string `db:"sub_type" json:"sub_type"`
	Components string `db:"components" json:"components"`
}

// NewComponent is a component that has not been assigned an id yet.
type NewComponent struct {
	MainType   string `db:"main_type" json:"main_type"`
	SubType    string `db:"sub_type" json:"sub_type"`
	Components string `db:"components" json:"components"`
}
