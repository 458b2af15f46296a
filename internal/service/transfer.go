package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/cinelist/cinelist-server/internal/domain"
	"github.com/cinelist/cinelist-server/internal/listdoc"
	"github.com/cinelist/cinelist-server/internal/projection"
)

// TransferService exports lists to portable documents and imports them back.
type TransferService struct {
	lists    *ListService
	resolver *projection.Resolver
	logger   *slog.Logger
	now      func() time.Time
}

// NewTransferService creates a new transfer service.
func NewTransferService(lists *ListService, resolver *projection.Resolver, logger *slog.Logger) *TransferService {
	return &TransferService{
		lists:    lists,
		resolver: resolver,
		logger:   logger,
		now:      time.Now,
	}
}

// Export builds the document for one list. Items whose media can no longer be
// resolved are left out.
func (s *TransferService) Export(ctx context.Context, userID, listID string) (listdoc.Document, error) {
	list, err := s.lists.List(ctx, userID, listID)
	if err != nil {
		return listdoc.Document{}, err
	}

	resolved := s.resolver.Resolve(ctx, list.Items)
	doc := listdoc.Document{
		ListName: list.Name,
		Items:    make([]listdoc.Entry, 0, len(resolved)),
	}
	for _, d := range resolved {
		doc.Items = append(doc.Items, listdoc.NewEntry(d.Media, d.UserRating))
	}

	if dropped := len(list.Items) - len(resolved); dropped > 0 {
		s.logger.Warn("export skipped unresolvable items",
			"user_id", userID,
			"list_id", listID,
			"dropped", dropped,
		)
	}
	return doc, nil
}

// Import decodes data and appends it as a new list. Nothing is created when the
// document is malformed.
func (s *TransferService) Import(ctx context.Context, userID string, data []byte) (domain.User, domain.UserList, error) {
	if err := ctx.Err(); err != nil {
		return domain.User{}, domain.UserList{}, err
	}

	doc, err := listdoc.Decode(data)
	if err != nil {
		return domain.User{}, domain.UserList{}, err
	}

	return s.lists.ImportList(ctx, userID, doc.ListName, doc.ListItems(s.now()))
}
