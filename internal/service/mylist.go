package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/okonma/arc/internal/account"
	"github.com/okonma/arc/internal/anilist"
	"github.com/okonma/arc/internal/cache"
	"github.com/okonma/arc/internal/domain"
)

const favoritesListName = "Favorites"

// UserList is one account list with its media resolved.
type UserList struct {
	List  account.List
	Media []*domain.Media
}

// MyListData is everything the my-list view renders.
type MyListData struct {
	// Profile is nil when the user has not created one yet.
	Profile *account.Profile
	Lists   []UserList
}

// MyListService loads and mutates the signed-in user's lists.
type MyListService struct {
	accounts *account.Client
	client   *anilist.Client
	cache    *cache.Cache
	logger   *slog.Logger
}

// NewMyListService creates the list service.
func NewMyListService(accounts *account.Client, client *anilist.Client, c *cache.Cache, logger *slog.Logger) *MyListService {
	if logger == nil {
		logger = slog.Default()
	}
	return &MyListService{accounts: accounts, client: client, cache: c, logger: logger}
}

// SignedIn reports whether an account session is available.
func (s *MyListService) SignedIn() bool {
	return s.accounts != nil && s.accounts.HasSession()
}

// Load returns the user's profile and lists with their media entries
// resolved. Media detail lookups go through the TTL cache; an entry that
// cannot be resolved is dropped from the view rather than failing the whole
// list. A missing profile is not an error.
func (s *MyListService) Load(ctx context.Context) (*MyListData, error) {
	user, err := s.accounts.CurrentUser(ctx)
	if err != nil {
		return nil, err
	}

	data := &MyListData{}

	profile, err := s.accounts.GetProfile(ctx, user.ID)
	switch err {
	case nil:
		data.Profile = profile
	case domain.ErrNotFound:
	default:
		s.logger.Warn("failed to load profile", "userID", user.ID, "error", err)
	}

	lists, err := s.accounts.GetLists(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	for _, list := range lists {
		items, err := s.accounts.GetListItems(ctx, list.DocumentID)
		if err != nil {
			s.logger.Error("failed to load list items", "listID", list.DocumentID, "error", err)
			return nil, err
		}

		ul := UserList{List: list}
		for _, item := range items {
			media, err := s.resolveMedia(ctx, item.AnilistID)
			if err != nil {
				s.logger.Warn("failed to resolve list entry", "mediaID", item.AnilistID, "error", err)
				continue
			}
			ul.Media = append(ul.Media, media)
		}
		data.Lists = append(data.Lists, ul)
	}
	return data, nil
}

// ToggleFavorite flips membership of mediaID in the user's favorites list,
// creating the list on first use. Returns true when added.
func (s *MyListService) ToggleFavorite(ctx context.Context, mediaID int) (bool, error) {
	user, err := s.accounts.CurrentUser(ctx)
	if err != nil {
		return false, err
	}

	lists, err := s.accounts.GetLists(ctx, user.ID)
	if err != nil {
		return false, err
	}

	var favoritesID string
	for _, list := range lists {
		if list.SystemListType == "FAVORITES" || list.Name == favoritesListName {
			favoritesID = list.DocumentID
			break
		}
	}
	if favoritesID == "" {
		created, err := s.accounts.CreateList(ctx, user.ID, favoritesListName)
		if err != nil {
			return false, err
		}
		s.logger.Info("created favorites list", "listID", created.DocumentID)
		favoritesID = created.DocumentID
	}

	return s.accounts.ToggleListItem(ctx, user.ID, favoritesID, mediaID)
}

func (s *MyListService) resolveMedia(ctx context.Context, id int) (*domain.Media, error) {
	key := fmt.Sprintf("anilist_detail_%d", id)
	if media, ok := cache.Get[*domain.Media](s.cache, key); ok {
		return media, nil
	}

	media, err := s.client.FetchDetail(ctx, id)
	if err != nil {
		return nil, err
	}
	s.cache.Set(key, media, 0)
	return media, nil
}
