package tenant

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name       string
		firmNo     string
		periodNo   string
		wantFirm   string
		wantPeriod string
		wantErr    bool
	}{
		{
			name:       "plain firm and period",
			firmNo:     "113",
			periodNo:   "1",
			wantFirm:   "113",
			wantPeriod: "01",
		},
		{
			name:       "already padded period",
			firmNo:     "113",
			periodNo:   "01",
			wantFirm:   "113",
			wantPeriod: "01",
		},
		{
			name:       "two digit period",
			firmNo:     "9",
			periodNo:   "12",
			wantFirm:   "9",
			wantPeriod: "12",
		},
		{
			name:       "surrounding whitespace",
			firmNo:     " 113 ",
			periodNo:   " 2 ",
			wantFirm:   "113",
			wantPeriod: "02",
		},
		{
			name:     "missing firm",
			firmNo:   "",
			periodNo: "1",
			wantErr:  true,
		},
		{
			name:     "missing period",
			firmNo:   "113",
			periodNo: "",
			wantErr:  true,
		},
		{
			name:     "non-numeric firm",
			firmNo:   "abc",
			periodNo: "1",
			wantErr:  true,
		},
		{
			name:     "negative firm",
			firmNo:   "-3",
			periodNo: "1",
			wantErr:  true,
		},
		{
			name:     "period out of range",
			firmNo:   "113",
			periodNo: "100",
			wantErr:  true,
		},
		{
			name:     "injection attempt in period",
			firmNo:   "113",
			periodNo: "1; DROP TABLE x",
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tc, err := Resolve("LG", tt.firmNo, tt.periodNo)
			if tt.wantErr {
				require.Error(t, err)
				var invalid *InvalidTenantError
				assert.ErrorAs(t, err, &invalid)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantFirm, tc.FirmNo)
			assert.Equal(t, tt.wantPeriod, tc.PeriodNo)
		})
	}
}

func TestResolveEmptyPrefix(t *testing.T) {
	_, err := Resolve("", "113", "1")
	require.Error(t, err)
}

func TestTableNames(t *testing.T) {
	tc, err := Resolve("LG", "113", "1")
	require.NoError(t, err)

	// Lines are period scoped, masters are firm scoped.
	assert.Equal(t, "LG_113_01_STLINE", tc.Table(KindLines))
	assert.Equal(t, "LG_113_CLCARD", tc.Table(KindAccounts))
	assert.Equal(t, "LG_113_ITEMS", tc.Table(KindProducts))
}

func TestString(t *testing.T) {
	tc, err := Resolve("LG", "7", "3")
	require.NoError(t, err)
	assert.Equal(t, "7/03", tc.String())
}
