package main

import (
	"context"
	"testing"
	"tour-planner-service/internal/adapters/repositories"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestInitAndSeedLogsThroughZap(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	undo := zap.ReplaceGlobals(zap.New(core))
	defer undo()

	cities, err := repositories.LoadCitySeeds("")
	require.NoError(t, err)

	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer conn.Close()

	mock.ExpectBegin()
	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS cities`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()
	mock.ExpectBegin()
	prep := mock.ExpectPrepare(`INSERT INTO cities`)
	for _, c := range cities {
		prep.ExpectExec().WithArgs(c.Name, c.Coords.Lat, c.Coords.Lon).WillReturnResult(sqlmock.NewResult(0, 1))
	}
	mock.ExpectCommit()

	require.NoError(t, initAndSeed(context.Background(), conn, ""))
	assert.NoError(t, mock.ExpectationsWereMet())

	seeding := logs.FilterMessage("seeding cities").All()
	require.Len(t, seeding, 1)
	assert.EqualValues(t, len(cities), seeding[0].ContextMap()["cities"])
	assert.Equal(t, 1, logs.FilterMessage("seeding complete").Len())
}
