package services

import (
	"renthub/config"
	"renthub/internal/database"
)

type Service struct {
	Token       *TokenService
	Mail        *MailService
	Upload      *UploadService
	Report      *ReportService
	Transaction *TransactionService
	Scheduler   *SchedulerService
}

func New(db database.DB, config config.Config) (Service, error) {
	uploadService, err := NewUploadService(config.UploadDir)
	if err != nil {
		return Service{}, err
	}

	return Service{
		Token:       NewTokenService(config, db),
		Mail:        NewMailService(config),
		Upload:      uploadService,
		Report:      NewReportService(),
		Transaction: NewTransactionService(db),
		Scheduler:   NewSchedulerService(),
	}, nil
}
