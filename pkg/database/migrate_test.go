package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMigrations(t *testing.T) {
	migs, err := LoadMigrations()
	require.NoError(t, err)
	require.NotEmpty(t, migs)

	assert.Equal(t, int64(1), migs[0].Version)
	assert.Equal(t, "init_schema", migs[0].Name)
	assert.Len(t, migs[0].Checksum, 64)
	assert.Contains(t, migs[0].SQL, "UNIQUE (job_id, applicant_id)")
	assert.Contains(t, migs[0].SQL, "UNIQUE (job_id, candidate_id)")

	for i := 1; i < len(migs); i++ {
		assert.Less(t, migs[i-1].Version, migs[i].Version)
	}
}
