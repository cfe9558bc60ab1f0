package service

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"crm/internal/apperr"
	"crm/internal/authz"
	"crm/internal/entity"
	"crm/internal/queue"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportClients(t *testing.T) {
	env := newTestEnv(t)
	env.client(t, env.commercial, "a@engines.test")
	env.client(t, env.commercial, "b@engines.test")

	result, err := env.svc.Export(env.ctx, env.commercial, "Clients")
	require.NoError(t, err)
	assert.Equal(t, ExportClients, result.Kind)
	assert.Equal(t, 2, result.Count)
	assert.Equal(t, "clients/2024/03/01/clients-20240301T100000.json", result.Key)

	data, err := os.ReadFile(filepath.Join(env.exportDir, filepath.FromSlash(result.Key)))
	require.NoError(t, err)
	var clients []entity.DbClient
	require.NoError(t, json.Unmarshal(data, &clients))
	require.Len(t, clients, 2)
	assert.Equal(t, "a@engines.test", clients[0].Email)

	last := env.publisher.events[len(env.publisher.events)-1]
	assert.Equal(t, queue.ExportCompleted, last.Type)
	assert.Equal(t, result.Key, last.Data["key"])
}

func TestExportGate(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.svc.Export(env.ctx, env.support, ExportClients)
	assert.ErrorIs(t, err, authz.ErrPermissionDenied)

	_, err = env.svc.Export(env.ctx, env.admin, "invoices")
	assert.Equal(t, apperr.CodeValidation, apperr.CodeOf(err))

	result, err := env.svc.Export(env.ctx, env.support, ExportEvents)
	require.NoError(t, err)
	assert.Zero(t, result.Count)
}
