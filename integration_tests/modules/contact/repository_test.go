package contactintegrationtests

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	contactdb "github.com/sh4ner/streamerpulse/app/modules/contact/infrastructure/repositories"
	"github.com/sh4ner/streamerpulse/integration_tests/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContactRepository(t *testing.T) {
	ctx := context.Background()
	require.NoError(t, testEnv.Reset(ctx))
	repo := contactdb.NewRepository(testEnv.DB)
	gen := testutils.NewTestDataGenerator(0)

	older := gen.Contact()
	older.CreatedAt = time.Now().UTC().Add(-time.Hour)
	newer := gen.Contact()
	require.NoError(t, repo.CreateContact(ctx, nil, older))
	require.NoError(t, repo.CreateContact(ctx, nil, newer))

	contacts, err := repo.ListContacts(ctx, nil)
	require.NoError(t, err)
	require.Len(t, contacts, 2)
	assert.Equal(t, newer.ID, contacts[0].ID)
	assert.Equal(t, older.Email, contacts[1].Email)

	require.NoError(t, repo.DeleteContact(ctx, nil, older.ID))
	assert.ErrorIs(t, repo.DeleteContact(ctx, nil, older.ID), contactdb.ErrNotFound)
	assert.ErrorIs(t, repo.DeleteContact(ctx, nil, uuid.New()), contactdb.ErrNotFound)
}
