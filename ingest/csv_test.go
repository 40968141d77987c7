package ingest_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sengkeat-dex/Tokenize/ingest"
	"github.com/sengkeat-dex/Tokenize/models"
)

const sample = `Main Type,Sub Type,Components
Asset Tokenization,Real Estate,"Title registry, valuation oracle"
Asset Tokenization,Equity, Cap table sync
Main Type,Sub Type,Components
Digital Wallet,Custodial
Digital Wallet,Custodial,"HSM, MPC signer",extra
`

func TestParseCSV(t *testing.T) {
	components, err := ingest.ParseCSV(strings.NewReader(sample))
	require.NoError(t, err)

	assert.Equal(t, []models.NewComponent{
		{MainType: "Asset Tokenization", SubType: "Real Estate", Components: "Title registry, valuation oracle"},
		{MainType: "Asset Tokenization", SubType: "Equity", Components: "Cap table sync"},
		{MainType: "Digital Wallet", SubType: "Custodial", Components: "HSM, MPC signer"},
	}, components)
}

func TestParseCSVEmpty(t *testing.T) {
	components, err := ingest.ParseCSV(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, components)

	components, err = ingest.ParseCSV(strings.NewReader("Main Type,Sub Type,Components\n"))
	require.NoError(t, err)
	assert.Empty(t, components)
}

func TestParseCSVMalformed(t *testing.T) {
	_, err := ingest.ParseCSV(strings.NewReader("Main Type,Sub Type,Components\n\"unterminated,x,y\n"))
	assert.Error(t, err)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "components.csv")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o600))

	components, err := ingest.LoadFile(path)
	require.NoError(t, err)
	assert.Len(t, components, 3)

	_, err = ingest.LoadFile(filepath.Join(t.TempDir(), "missing.csv"))
	assert.Error(t, err)
}
