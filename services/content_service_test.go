package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"techkwiz/cache"
)

func TestActiveAdSlotsFiltersPlacementAndActive(t *testing.T) {
	svc := NewContentService(newTestDB(t))

	inactive := false
	_, err := svc.CreateAdSlot(&AdSlotCreateRequest{
		Name: "Header banner", AdUnitID: "u1", AdCode: "<ins/>", Placement: "header", AdType: "adsense",
	})
	require.NoError(t, err)
	_, err = svc.CreateAdSlot(&AdSlotCreateRequest{
		Name: "Disabled header", AdUnitID: "u2", AdCode: "<ins/>", Placement: "header", AdType: "adsense", IsActive: &inactive,
	})
	require.NoError(t, err)
	_, err = svc.CreateAdSlot(&AdSlotCreateRequest{
		Name: "Mid quiz", AdUnitID: "u3", AdCode: "<ins/>", Placement: "between-questions", AdType: "adx",
	})
	require.NoError(t, err)

	header, err := svc.ActiveAdSlots("header")
	require.NoError(t, err)
	require.Len(t, header, 1)
	assert.Equal(t, "Header banner", header[0].Name)

	between, err := svc.ActiveAdSlots("between-questions")
	require.NoError(t, err)
	assert.Len(t, between, 1)
}

func TestScriptLifecycle(t *testing.T) {
	svc := NewContentService(newTestDB(t))

	script, err := svc.CreateScript(&ScriptCreateRequest{
		Name: "GA", ScriptCode: "<script></script>", Placement: "header",
	})
	require.NoError(t, err)
	assert.True(t, script.IsActive)

	inactive := false
	updated, err := svc.UpdateScript(script.ID, &ScriptUpdateRequest{IsActive: &inactive})
	require.NoError(t, err)
	assert.False(t, updated.IsActive)

	active, err := svc.ActiveScripts("header")
	require.NoError(t, err)
	assert.Empty(t, active)

	require.NoError(t, svc.DeleteScript(script.ID))
	err = svc.DeleteScript(script.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateMissingAdSlot(t *testing.T) {
	svc := NewContentService(newTestDB(t))

	name := "x"
	_, err := svc.UpdateAdSlot("ghost", &AdSlotUpdateRequest{Name: &name})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestBackupRoundTrip(t *testing.T) {
	db := newTestDB(t)
	c := cache.NewMemory()
	categories := NewCategoryService(db, c)
	questions := NewQuestionService(db, c)
	backup := NewBackupService(db, c)

	category, err := categories.Create(context.Background(), &CategoryCreateRequest{Name: "Tech", EntryFee: 100})
	require.NoError(t, err)
	seedQuestions(t, questions, category.ID, 3)

	export, err := backup.Export()
	require.NoError(t, err)
	require.Len(t, export.Categories, 1)
	require.Len(t, export.Questions, 3)
	assert.False(t, export.ExportDate.IsZero())

	// Re-import replaces everything; ids survive the round trip.
	nCats, nQs, err := backup.Import(context.Background(), &QuizDataImportRequest{
		Categories: export.Categories,
		Questions:  export.Questions,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, nCats)
	assert.Equal(t, 3, nQs)

	restored, err := categories.Get(category.ID)
	require.NoError(t, err)
	assert.Equal(t, "Tech", restored.Name)
}

func TestSiteConfigResolveAndUpdate(t *testing.T) {
	svc := NewSiteConfigService(newTestDB(t))

	first, err := svc.Resolve()
	require.NoError(t, err)
	assert.Nil(t, first.GoogleAnalyticsID)

	ga := "G-12345"
	adsTxt := "google.com, pub-1, DIRECT"
	updated, err := svc.Update(&SiteConfigUpdateRequest{GoogleAnalyticsID: &ga, AdsTxtContent: &adsTxt})
	require.NoError(t, err)
	assert.Equal(t, first.ID, updated.ID)
	require.NotNil(t, updated.GoogleAnalyticsID)
	assert.Equal(t, "G-12345", *updated.GoogleAnalyticsID)

	body, err := svc.AdsTxt()
	require.NoError(t, err)
	assert.Equal(t, adsTxt, body)

	robots, err := svc.RobotsTxt()
	require.NoError(t, err)
	assert.Empty(t, robots)
}
