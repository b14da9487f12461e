package resource

import (
	"context"
	"testing"

	"cpms/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newWidgetService(t *testing.T) *Service[widget, *widget] {
	t.Helper()
	db := testutil.NewTestDB(t)
	require.NoError(t, db.AutoMigrate(&widget{}))
	return NewService(NewStore[widget](db, widgetSchema), widgetSchema)
}

func TestServiceCreateRequiredFieldGate(t *testing.T) {
	svc := newWidgetService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, []byte(`{}`))
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "Missing required widget field: name", verr.Message)

	// Nothing was persisted.
	recs, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, recs)
}

func TestServiceCreateAppliesDefaultsAndTrims(t *testing.T) {
	svc := newWidgetService(t)

	rec, err := svc.Create(context.Background(), []byte(`{"name":"  Anchor  "}`))
	require.NoError(t, err)
	assert.Equal(t, "Anchor", rec.Name)
	assert.Equal(t, "Basic", rec.Kind)
	assert.Equal(t, "#FFFFFF", rec.Color)
	assert.Equal(t, 0, rec.DisplayOrder)
	assert.NotEmpty(t, rec.ID)
}

func TestServiceCreateRejectsInvalidValues(t *testing.T) {
	svc := newWidgetService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, []byte(`{"name":"Anchor","kind":"Weird"}`))
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "kind must be one of: Basic, Fancy", verr.Message)

	_, err = svc.Create(ctx, []byte(`{"name":"Anchor","displayOrder":-1}`))
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "displayOrder must be at least 0", verr.Message)
}

func TestServiceCreateRejectsMalformedBody(t *testing.T) {
	svc := newWidgetService(t)

	_, err := svc.Create(context.Background(), []byte(`{"name"`))
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "Invalid request body", verr.Message)
}

func TestServiceCreateIgnoresClientSuppliedID(t *testing.T) {
	svc := newWidgetService(t)

	rec, err := svc.Create(context.Background(), []byte(`{"name":"Anchor","_id":"chosen"}`))
	require.NoError(t, err)
	assert.NotEqual(t, "chosen", rec.ID)
	assert.NotEmpty(t, rec.ID)
}

func TestServiceUpdateKeepsRequiredFields(t *testing.T) {
	svc := newWidgetService(t)
	ctx := context.Background()

	rec, err := svc.Create(ctx, []byte(`{"name":"Anchor"}`))
	require.NoError(t, err)

	// A partial update without the required field is fine.
	updated, err := svc.Update(ctx, rec.ID, []byte(`{"displayOrder":3}`))
	require.NoError(t, err)
	assert.Equal(t, "Anchor", updated.Name)
	assert.Equal(t, 3, updated.DisplayOrder)

	// Emptying a required field is rejected.
	_, err = svc.Update(ctx, rec.ID, []byte(`{"name":""}`))
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "Missing required widget field: name", verr.Message)
}

func TestServiceUpdateDoesNotResurrectDefaults(t *testing.T) {
	svc := newWidgetService(t)
	ctx := context.Background()

	rec, err := svc.Create(ctx, []byte(`{"name":"Anchor","color":"#FF0000"}`))
	require.NoError(t, err)

	updated, err := svc.Update(ctx, rec.ID, []byte(`{"displayOrder":1}`))
	require.NoError(t, err)
	assert.Equal(t, "#FF0000", updated.Color)
}

func TestServiceNotFoundSentinel(t *testing.T) {
	svc := newWidgetService(t)
	ctx := context.Background()

	_, err := svc.GetByID(ctx, "nonexistent")
	assert.True(t, IsNotFound(err))

	_, err = svc.Update(ctx, "nonexistent", []byte(`{"displayOrder":1}`))
	assert.True(t, IsNotFound(err))

	assert.True(t, IsNotFound(svc.Delete(ctx, "nonexistent")))
}

func TestServiceResolveRunsOnEveryRead(t *testing.T) {
	svc := newWidgetService(t)
	ctx := context.Background()

	var resolved []string
	svc.Resolve = func(ctx context.Context, w *widget) error {
		resolved = append(resolved, w.Name)
		return nil
	}

	rec, err := svc.Create(ctx, []byte(`{"name":"Anchor"}`))
	require.NoError(t, err)
	assert.Equal(t, []string{"Anchor"}, resolved)

	_, err = svc.GetByID(ctx, rec.ID)
	require.NoError(t, err)

	_, err = svc.Update(ctx, rec.ID, []byte(`{"displayOrder":1}`))
	require.NoError(t, err)

	_, err = svc.List(ctx)
	require.NoError(t, err)

	assert.Len(t, resolved, 4)
}
