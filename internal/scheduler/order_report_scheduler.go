package scheduler

import (
	"github.com/robfig/cron/v3"

	"github.com/hartondavid/delivery-backend/internal/app/service"
	"github.com/hartondavid/delivery-backend/pkg/logger"
)

// OrderReportScheduler logs a daily summary of order counts per status.
type OrderReportScheduler struct {
	cron         *cron.Cron
	orderService service.OrderService
}

func NewOrderReportScheduler(orderService service.OrderService) *OrderReportScheduler {
	return &OrderReportScheduler{
		cron:         cron.New(),
		orderService: orderService,
	}
}

// Start registers the daily report job at 6:00 AM server time.
func (s *OrderReportScheduler) Start() error {
	_, err := s.cron.AddFunc("0 6 * * *", func() {
		summary, err := s.orderService.StatusSummary()
		if err != nil {
			logger.Error("Failed to build order status summary", err)
			return
		}

		fields := make(map[string]interface{}, len(summary))
		for status, count := range summary {
			fields[string(status)] = count
		}
		logger.Info("Daily order status summary", fields)
	})

	if err != nil {
		logger.Error("Failed to add cron job for order report", err)
		return err
	}

	s.cron.Start()
	logger.Info("Order report scheduler started (daily at 6:00 AM)", nil)

	return nil
}

func (s *OrderReportScheduler) Stop() {
	s.cron.Stop()
	logger.Info("Order report scheduler stopped", nil)
}
