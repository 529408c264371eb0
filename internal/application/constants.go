package application

import "time"

const (
	defaultLeaderboardLimit    = 10
	defaultRefreshInterval     = 30 * time.Second
	defaultExternalCallTimeout = 5 * time.Second

	pastWarsLimit = 10
	editLogLimit  = 20
	exportLimit   = 1000

	placeholderLeaderboard = "⏳ Создаю лидерборд..."
	placeholderVehicles    = "⏳ Создаю таблицу техники..."
	emptyBoardText         = "Нет данных"

	timestampLayout = "15:04 UTC"

	// Excel report configuration
	excelLeaderboardSheet = "Лидерборд"
	excelVehiclesSheet    = "Техника"
	excelEditLogSheet     = "Журнал правок"
)
