package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/piggy/internal/common"
)

const savingsStatement = `OFXHEADER:100
DATA:OFXSGML
VERSION:102
SECURITY:NONE
ENCODING:USASCII
CHARSET:1252
COMPRESSION:NONE
OLDFILEUID:NONE
NEWFILEUID:NONE

<OFX>
<SIGNONMSGSRSV1>
<SONRS>
<STATUS>
<CODE>0
<SEVERITY>INFO
</STATUS>
<DTSERVER>20251130120000[0:GMT]
<LANGUAGE>ENG
</SONRS>
</SIGNONMSGSRSV1>
<BANKMSGSRSV1>
<STMTTRNRS>
<TRNUID>1
<STATUS>
<CODE>0
<SEVERITY>INFO
</STATUS>
<STMTRS>
<CURDEF>USD
<BANKACCTFROM>
<BANKID>123456789
<ACCTID>555
<ACCTTYPE>SAVINGS
</BANKACCTFROM>
<BANKTRANLIST>
<DTSTART>20251101120000[0:GMT]
<DTEND>20251130120000[0:GMT]
<STMTTRN>
<TRNTYPE>CREDIT
<DTPOSTED>20251105120000[0:GMT]
<TRNAMT>100.00
<FITID>A1
<NAME>ROUND UP
</STMTTRN>
<STMTTRN>
<TRNTYPE>CREDIT
<DTPOSTED>20251106120000[0:GMT]
<TRNAMT>40.00
<FITID>A2
<NAME>GIFT FROM GRANDMA
</STMTTRN>
<STMTTRN>
<TRNTYPE>DEBIT
<DTPOSTED>20251107120000[0:GMT]
<TRNAMT>-30.00
<FITID>A3
<NAME>ATM
</STMTTRN>
</BANKTRANLIST>
<LEDGERBAL>
<BALAMT>110.00
<DTASOF>20251130120000[0:GMT]
</LEDGERBAL>
</STMTRS>
</STMTTRNRS>
</BANKMSGSRSV1>
</OFX>`

func writeStatement(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(savingsStatement), 0600))
	return path
}

func TestImportOFXCmd(t *testing.T) {
	store := storePath(t)
	dir := t.TempDir()
	writeStatement(t, dir, "nov.ofx")
	writeStatement(t, dir, "nov-copy.ofx")

	_, err := execute(t, "", "--store", store, "add", "Trip", "500", "Путешествия")
	require.NoError(t, err)

	out, err := execute(t, "", "--store", store, "import-ofx", filepath.Join(dir, "*.ofx"), "--goal", "Trip", "--dry-run")
	require.NoError(t, err)
	assert.Contains(t, out, "2 credits totaling 140.00")
	assert.Contains(t, out, "Dry run")

	out, err = execute(t, "", "--store", store, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "0.00")
	assert.NotContains(t, out, "140.00")

	out, err = execute(t, "", "--store", store, "import-ofx", filepath.Join(dir, "nov.ofx"), "--goal", "Trip", "--match", "round")
	require.NoError(t, err)
	assert.Contains(t, out, "1 credits totaling 100.00")
	assert.Contains(t, out, `Deposited 100.00 into "Trip". Current balance: 100.00`)
}

func TestImportOFXCmd_Errors(t *testing.T) {
	dir := t.TempDir()
	statement := writeStatement(t, dir, "nov.ofx")
	garbage := filepath.Join(dir, "garbage.ofx")
	require.NoError(t, os.WriteFile(garbage, []byte("hello"), 0600))

	tests := []struct {
		wantErr error
		name    string
		args    []string
	}{
		{name: "no files", args: []string{"import-ofx", filepath.Join(dir, "*.qfx"), "--goal", "Trip"}, wantErr: errNoFiles},
		{name: "missing goal", args: []string{"import-ofx", statement, "--goal", "Trip"}, wantErr: common.ErrGoalNotFound},
		{name: "bad pattern", args: []string{"import-ofx", statement, "--goal", "Trip", "--match", "(["}, wantErr: common.ErrInvalidConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, "", append([]string{"--store", storePath(t)}, tt.args...)...)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	_, err := execute(t, "", "--store", storePath(t), "import-ofx", garbage, "--goal", "Trip")
	require.Error(t, err)
	assert.Contains(t, common.UserMessage(err), "Could not read statement garbage.ofx")

	_, err = execute(t, "", "--store", storePath(t), "import-ofx", statement)
	assert.Error(t, err)
}
