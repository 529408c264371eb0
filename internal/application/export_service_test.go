package application

import (
	"bytes"
	"context"
	"testing"

	"foxhole/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestWarService_ExportWar(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	svc := newTestWarService(store, &fakeSink{}, fakeResolver{missing: map[string]bool{"p2": true}})

	_, err := store.StartWar(ctx, "12")
	require.NoError(t, err)
	_, err = svc.Destroy(ctx, DestroyRequest{PlayerID: "p1", Vehicle: models.VehicleMediumTanks, Amount: 2})
	require.NoError(t, err)
	_, err = svc.Destroy(ctx, DestroyRequest{PlayerID: "p2", Vehicle: models.VehicleLogistics, Amount: 1})
	require.NoError(t, err)
	_, err = svc.EditDestroy(ctx, EditRequest{EditorID: "o", TargetID: "p2", Vehicle: models.VehicleLogistics, Delta: -1}, allow)
	require.NoError(t, err)

	_, err = svc.ExportWar(ctx, "12", "o", deny)
	require.ErrorIs(t, err, ErrForbidden)

	_, err = svc.ExportWar(ctx, "13", "o", allow)
	require.ErrorIs(t, err, ErrWarNotFound)

	data, err := svc.ExportWar(ctx, "12", "o", allow)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{excelLeaderboardSheet, excelVehiclesSheet, excelEditLogSheet}, f.GetSheetList())

	board, err := f.GetRows(excelLeaderboardSheet)
	require.NoError(t, err)
	require.Len(t, board, 3)
	assert.Equal(t, []string{"1", "p1", "name-p1", "10"}, board[1])
	assert.Equal(t, []string{"2", "p2", "p2", "0"}, board[2])

	vehicles, err := f.GetRows(excelVehiclesSheet)
	require.NoError(t, err)
	assert.Equal(t, []string{models.VehicleMediumTanks, "5", "2"}, vehicles[1])

	log, err := f.GetRows(excelEditLogSheet)
	require.NoError(t, err)
	require.Len(t, log, 2)
	assert.Equal(t, []string{"o", "p2", models.VehicleLogistics, models.VehicleLogistics, "-1", "1", "0", "-1"}, log[1][1:])
}
