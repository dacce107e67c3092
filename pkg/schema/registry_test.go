package schema

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/goliatone/go-router"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestRegistryDocumentCompilesResources(t *testing.T) {
	reg := NewRegistry(WithInfo(router.OpenAPIInfo{
		Title:       "Catalog Schemas",
		Description: "catalog resources",
	}), WithTags("catalog"))

	reg.RegisterAll(newStubProvider("exercise"), newStubProvider("food-category"))

	doc := reg.Document()
	require.NotNil(t, doc)
	info := doc["info"].(map[string]any)
	assert.Equal(t, "Catalog Schemas", info["title"])

	paths, ok := doc["paths"].(map[string]any)
	require.True(t, ok)
	_, ok = paths["/exercises"]
	assert.True(t, ok, "expected /exercises path")
	assert.Equal(t, []string{"exercise", "food-category"}, reg.Resources())
}

func TestRegistryIgnoresUnnamedProviders(t *testing.T) {
	reg := NewRegistry()
	reg.Register(nil)
	reg.Register(stubProvider{})

	assert.Empty(t, reg.Resources())
	assert.Nil(t, reg.Document())
}

func TestRegistryHandlerEmitsNoContentWhenEmpty(t *testing.T) {
	reg := NewRegistry()
	ctx := router.NewMockContext()
	ctx.On("NoContent", http.StatusNoContent).Return(nil)

	require.NoError(t, reg.Handler()(ctx))
	ctx.AssertCalled(t, "NoContent", http.StatusNoContent)
}

func TestRegistryHandlerReturnsJSONPayload(t *testing.T) {
	reg := NewRegistry()
	reg.Register(newStubProvider("activity"))

	ctx := router.NewMockContext()
	ctx.On("JSON", http.StatusOK, mock.Anything).Return(nil)

	require.NoError(t, reg.Handler()(ctx))
	ctx.AssertCalled(t, "JSON", http.StatusOK, mock.Anything)
}

func TestRegistryListenerReceivesSnapshot(t *testing.T) {
	now := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	reg := NewRegistry(WithClock(fixedClock{now: now}))

	var got []Snapshot
	reg.Subscribe(func(_ context.Context, snap Snapshot) {
		got = append(got, snap)
	})

	reg.Register(newStubProvider("exercise"))
	reg.Register(newStubProvider("exercise"))

	require.Len(t, got, 2)
	assert.Equal(t, now, got[1].GeneratedAt)
	assert.Equal(t, []string{"exercise"}, got[1].Resources)
	assert.NotNil(t, got[1].Document)
}

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time { return c.now }

type stubProvider struct {
	metadata router.ResourceMetadata
}

func (s stubProvider) GetMetadata() router.ResourceMetadata {
	return s.metadata
}

func newStubProvider(name string) router.MetadataProvider {
	plural := name + "s"
	return stubProvider{
		metadata: router.ResourceMetadata{
			Name:       name,
			PluralName: plural,
			Schema: router.SchemaMetadata{
				Name: name,
				Properties: map[string]router.PropertyInfo{
					"id": {Type: "string", OriginalName: "id"},
				},
			},
			Routes: []router.RouteDefinition{
				{Method: router.GET, Path: "/" + plural, Name: name + ":list"},
			},
		},
	}
}
