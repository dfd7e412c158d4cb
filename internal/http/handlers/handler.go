package handlers

import (
	"adisyon-report-service/internal/config"
	"adisyon-report-service/internal/report"
	"adisyon-report-service/internal/store"
	"adisyon-report-service/internal/utils"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type Handler struct {
	DB     *pgxpool.Pool
	Logger *zap.Logger
	Config config.Config
	Orders *store.Orders
}

// EngineOptions builds the report engine options every surface of this
// service shares, so the HTTP and websocket paths cannot drift apart.
func EngineOptions(cfg config.Config, courierMetrics bool) report.Options {
	return report.Options{
		Location:             utils.LocationOrUTC(cfg.ReportTimezone),
		SplitUnknownPayments: cfg.SplitUnknownPayments,
		CourierMetrics:       courierMetrics,
	}
}
