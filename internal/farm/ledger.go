package farm

import (
	"context"
	"fmt"

	"github.com/osse101/Homestead_Go/internal/domain"
	"github.com/osse101/Homestead_Go/internal/ledger"
	"github.com/osse101/Homestead_Go/internal/logger"
)

func (s *service) LedgerHistory(ctx context.Context, username string, limit int) ([]domain.LedgerEntry, error) {
	if limit <= 0 {
		limit = DefaultLedgerLimit
	}
	if limit > MaxLedgerLimit {
		limit = MaxLedgerLimit
	}

	f, err := s.loadByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	entries, err := s.ledgerRepo.ListEntries(ctx, f.Wallet.ID, limit)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgListLedgerFailed, err)
	}
	return entries, nil
}

func (s *service) VerifyLedger(ctx context.Context, username string) (*LedgerReport, error) {
	f, err := s.loadByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	entries, err := s.ledgerRepo.ListEntries(ctx, f.Wallet.ID, 0)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgListLedgerFailed, err)
	}

	report := &LedgerReport{
		WalletID:   f.Wallet.ID,
		Gold:       f.Wallet.Gold,
		LedgerSum:  ledger.Balance(entries),
		EntryCount: len(entries),
		Consistent: true,
		History:    ledger.Replay(entries),
	}
	if verr := ledger.Verify(entries, f.Wallet.Gold); verr != nil {
		report.Consistent = false
		report.Problem = verr.Error()
	}

	logger.FromContext(ctx).Info(LogMsgLedgerVerified,
		"username", username,
		"consistent", report.Consistent,
		"entries", report.EntryCount)

	return report, nil
}

func (s *service) loadByUsername(ctx context.Context, username string) (*domain.Farm, error) {
	player, err := s.repo.GetPlayerByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgLookupPlayerFailed, err)
	}
	f, err := s.repo.LoadFarm(ctx, player.ID)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgLoadFarmFailed, err)
	}
	return f, nil
}
