package healthdata

import (
	"context"
	"net/http"
	"testing"
	"time"

	domainHealth "sankofa/internal/domain/healthdata"
	domainUser "sankofa/internal/domain/user"
	"sankofa/internal/infrastructure/database/postgres"
	"sankofa/internal/testutil"
	appErrors "sankofa/pkg/errors"
	"sankofa/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarise(t *testing.T) {
	records := []*domainHealth.Record{
		{Location: "Old Fadama", RiskLevel: domainHealth.RiskCritical, DiseaseCases: map[string]int{"malaria": 12, "cholera": 3}},
		{Location: "Jamestown", RiskLevel: domainHealth.RiskHigh, DiseaseCases: map[string]int{"malaria": 4}},
		{Location: "Old Fadama", RiskLevel: domainHealth.RiskHigh, DiseaseCases: map[string]int{"typhoid": 1}},
		{Location: "Labadi", RiskLevel: domainHealth.RiskLow},
	}

	summary := Summarise(records)
	assert.Equal(t, int64(4), summary.RecordCount)
	assert.Equal(t, 20, summary.TotalCases)
	assert.Equal(t, map[string]int{"malaria": 16, "cholera": 3, "typhoid": 1}, summary.CasesByDisease)
	assert.Equal(t, int64(2), summary.CountByRiskLevel["high"])
	assert.Equal(t, []string{"Jamestown", "Old Fadama"}, summary.HighRiskLocations)

	empty := Summarise(nil)
	assert.Empty(t, empty.HighRiskLocations)
	assert.Zero(t, empty.TotalCases)
}

func TestRecordLifecycle(t *testing.T) {
	db := testutil.OpenDB(t)
	svc := NewService(postgres.NewHealthDataRepository(db))
	ctx := context.Background()
	volunteer := testutil.SeedUser(t, db, domainUser.RoleVolunteer)

	recordedAt := time.Date(2024, 2, 10, 9, 0, 0, 0, time.UTC)
	created, err := svc.Create(ctx, volunteer.ID, &CreateRecordRequest{
		Location:             "Old Fadama",
		Region:               "Greater Accra",
		RiskLevel:            "high",
		DiseaseCases:         map[string]int{"Malaria": 5, " malaria ": 2},
		EnvironmentalFactors: map[string]interface{}{"flooding": true},
		RecordedAt:           &recordedAt,
	})
	require.NoError(t, err)
	assert.Equal(t, 7, created.DiseaseCases["malaria"])

	_, err = svc.Create(ctx, volunteer.ID, &CreateRecordRequest{
		Location: "X", Region: "Y", RiskLevel: "low", DiseaseCases: map[string]int{"cholera": -1},
	})
	assert.ErrorIs(t, err, domainHealth.ErrNegativeCaseCount)

	_, err = svc.Create(ctx, volunteer.ID, &CreateRecordRequest{Location: "X", Region: "Y", RiskLevel: "extreme"})
	assert.Equal(t, http.StatusBadRequest, appErrors.StatusOf(err))

	updated, err := svc.Update(ctx, created.ID, &UpdateRecordRequest{RiskLevel: utils.StringPtr("critical")})
	require.NoError(t, err)
	assert.Equal(t, "critical", updated.RiskLevel)

	list, err := svc.List(ctx, &ListRecordsRequest{RiskLevel: "critical"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), list.Total)

	summary, err := svc.Summary(ctx, &ListRecordsRequest{Region: "greater accra"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Old Fadama"}, summary.HighRiskLocations)

	require.NoError(t, svc.Delete(ctx, created.ID))
	_, err = svc.Get(ctx, created.ID)
	assert.ErrorIs(t, err, domainHealth.ErrRecordNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, uuid.New()), domainHealth.ErrRecordNotFound)
}
