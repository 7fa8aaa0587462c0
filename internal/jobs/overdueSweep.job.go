package jobs

import (
	"context"
	"time"

	"renthub/internal/models"
	"renthub/internal/repositories"
	"renthub/internal/services"
	"renthub/internal/utils"

	logger "github.com/Bparsons0904/goLogger"

	"gorm.io/gorm"
)

// OverdueSweepJob keeps payment rows and overdue flags current: it seeds the
// current and next month's upcoming payments for every active contract, moves
// past upcoming payments to overdue and syncs the contract overdue flag.
type OverdueSweepJob struct {
	contractRepo repositories.ContractRepository
	paymentRepo  repositories.PaymentRepository
	transaction  *services.TransactionService
	schedule     services.Schedule
	log          logger.Logger
}

func NewOverdueSweepJob(
	contractRepo repositories.ContractRepository,
	paymentRepo repositories.PaymentRepository,
	transaction *services.TransactionService,
	schedule services.Schedule,
) *OverdueSweepJob {
	return &OverdueSweepJob{
		contractRepo: contractRepo,
		paymentRepo:  paymentRepo,
		transaction:  transaction,
		schedule:     schedule,
		log:          logger.New("overdueSweepJob"),
	}
}

func (j *OverdueSweepJob) Name() string {
	return "overdue-sweep"
}

func (j *OverdueSweepJob) Schedule() services.Schedule {
	return j.schedule
}

func (j *OverdueSweepJob) Execute(ctx context.Context) error {
	log := j.log.Function("Execute")

	now := time.Now().UTC()
	contracts, err := j.contractRepo.ListActive(ctx, now)
	if err != nil {
		return log.Err("failed to list active contracts", err)
	}

	swept := 0
	for i := range contracts {
		contract := &contracts[i]
		if err := j.sweepContract(ctx, contract, now); err != nil {
			log.Er("failed to sweep contract", err, "contractID", contract.ID)
			continue
		}
		swept++
	}

	log.Info("overdue sweep finished", "contracts", len(contracts), "swept", swept)
	return nil
}

func (j *OverdueSweepJob) sweepContract(
	ctx context.Context,
	contract *models.Contract,
	now time.Time,
) error {
	currentMonth := utils.MonthKey(now)
	nextMonth := utils.NextMonthKey(now)

	return j.transaction.Execute(ctx, func(ctx context.Context, tx *gorm.DB) error {
		for _, month := range []string{currentMonth, nextMonth} {
			if err := j.ensurePayment(ctx, tx, contract, month); err != nil {
				return err
			}
		}

		payments, err := j.paymentRepo.ListByContract(ctx, contract.ID)
		if err != nil {
			return err
		}

		anyOverdue := false
		for i := range payments {
			payment := &payments[i]

			if payment.Status == models.PaymentUpcoming && payment.MonthPaid < currentMonth {
				payment.Status = models.PaymentOverdue
				if err := j.paymentRepo.Update(ctx, tx, payment); err != nil {
					return err
				}
			}

			if payment.Status == models.PaymentOverdue {
				anyOverdue = true
			}
		}

		if contract.Overdue != anyOverdue {
			if err := j.contractRepo.MarkOverdue(ctx, tx, contract.ID, anyOverdue); err != nil {
				return err
			}
		}

		return nil
	})
}

func (j *OverdueSweepJob) ensurePayment(
	ctx context.Context,
	tx *gorm.DB,
	contract *models.Contract,
	month string,
) error {
	monthStart, err := utils.ParseMonthKey(month)
	if err != nil {
		return err
	}
	if !contract.Active(monthStart) {
		return nil
	}

	existing, err := j.paymentRepo.GetByContractAndMonth(ctx, contract.ID, month)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}

	payment := &models.RentPayment{
		ContractID: contract.ID,
		MonthPaid:  month,
		Status:     models.PaymentUpcoming,
		DueAmount:  contract.MonthlyTotal(),
	}
	return j.paymentRepo.Create(ctx, tx, payment)
}
