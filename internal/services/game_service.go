// internal/services/game_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/gamevault/gamestore-backend/internal/catalog"
	"github.com/gamevault/gamestore-backend/internal/legacy"
	"github.com/gamevault/gamestore-backend/internal/models"
	"github.com/gamevault/gamestore-backend/internal/utils"
)

type GameService struct {
	db             *gorm.DB
	legacyStore    legacy.Store
	cacheStep      *catalog.CacheStep
	reconciler     *Reconciler
	storageService *StorageService
	logger         *logrus.Entry
}

type CreateGameRequest struct {
	Name         string   `json:"name" validate:"required,min=1,max=255"`
	Key          string   `json:"key,omitempty" validate:"omitempty,game_key"`
	Description  string   `json:"description,omitempty"`
	Price        float64  `json:"price" validate:"required,min=0"`
	UnitsInStock int      `json:"units_in_stock" validate:"min=0"`
	Screenshots  []string `json:"screenshots,omitempty" validate:"max=20,dive,url"`
	PublisherID  *string  `json:"publisher_id,omitempty"`
	GenreIDs     []string `json:"genre_ids,omitempty"`
	PlatformIDs  []string `json:"platform_ids,omitempty"`
}

type UpdateGameRequest struct {
	Name         *string  `json:"name,omitempty" validate:"omitempty,min=1,max=255"`
	Description  *string  `json:"description,omitempty"`
	Price        *float64 `json:"price,omitempty" validate:"omitempty,min=0"`
	UnitsInStock *int     `json:"units_in_stock,omitempty" validate:"omitempty,min=0"`
	Discontinued *bool    `json:"discontinued,omitempty"`
	Screenshots  []string `json:"screenshots,omitempty" validate:"max=20,dive,url"`
	PublisherID  *string  `json:"publisher_id,omitempty"`
	GenreIDs     []string `json:"genre_ids,omitempty"`
	PlatformIDs  []string `json:"platform_ids,omitempty"`
}

func NewGameService(db *gorm.DB, legacyStore legacy.Store, cacheStep *catalog.CacheStep, reconciler *Reconciler, storageService *StorageService) *GameService {
	return &GameService{
		db:             db,
		legacyStore:    legacyStore,
		cacheStep:      cacheStep,
		reconciler:     reconciler,
		storageService: storageService,
		logger:         logrus.WithField("component", "game_service"),
	}
}

// GetGames returns one page of the merged two-source listing for the given
// criteria. Results are cached by the full criteria for the cache TTL; a
// concurrent miss on the same criteria computes the listing once.
func (s *GameService) GetGames(ctx context.Context, criteria catalog.FilterCriteria) (*catalog.PagedResult, error) {
	cached, err := s.cacheStep.GetOrCompute(ctx, criteria.CacheKey(), func(ctx context.Context) (*catalog.CachedCommonGames, error) {
		return s.queryGames(ctx, criteria)
	})
	if err != nil {
		return nil, err
	}

	return &catalog.PagedResult{
		Items: cached.Items,
		Total: cached.Total,
		Page:  criteria.EffectivePage(),
		Pages: criteria.Pages(cached.Total),
	}, nil
}

// queryGames runs the per-source pipelines and merges their results into the
// requested page window. The pre-pagination total is the sum of the two
// per-source totals.
func (s *GameService) queryGames(ctx context.Context, criteria catalog.FilterCriteria) (*catalog.CachedCommonGames, error) {
	sortKey := criteria.EffectiveSort()
	page := criteria.EffectivePage()

	primaryCount := catalog.NewCountingLimitStage(page, criteria.PageSize)
	primaryPipeline := catalog.NewPipeline[*gorm.DB](
		catalog.NameFilter(criteria.Name),
		catalog.MinPriceFilter(criteria.MinPrice),
		catalog.MaxPriceFilter(criteria.MaxPrice),
		catalog.GenreFilter(criteria.Genres),
		catalog.PlatformFilter(criteria.Platforms),
		catalog.PublisherFilter(criteria.Publishers),
		catalog.PublishedWithinFilter(criteria.PublishedWithin),
		catalog.SortStage(sortKey),
	).Then(primaryCount)

	query := primaryPipeline.Run(s.db.WithContext(ctx).Model(&models.Game{}))

	var games []models.Game
	if err := query.Find(&games).Error; err != nil {
		return nil, fmt.Errorf("failed to query games: %w", err)
	}
	if err := primaryCount.Err(); err != nil {
		return nil, fmt.Errorf("failed to count games: %w", err)
	}

	commentCounts, err := s.commentCounts(ctx, games)
	if err != nil {
		return nil, err
	}

	primary := make([]catalog.CommonGame, 0, len(games))
	for i := range games {
		common := catalog.NewCommonGame(catalog.SourceStore, &games[i])
		common.CommentCount = commentCounts[games[i].ID]
		primary = append(primary, common)
	}

	legacyGames, legacyTotal, err := s.queryLegacy(ctx, criteria, sortKey, page)
	if err != nil {
		return nil, err
	}

	merged := catalog.MergeCommon(primary, legacyGames, sortKey)
	window := catalog.PageWindow(merged, page, criteria.PageSize)

	return &catalog.CachedCommonGames{
		Items: window,
		Total: primaryCount.Total() + legacyTotal,
	}, nil
}

// queryLegacy runs the legacy-side pipeline. Platform filters exclude the
// legacy source entirely since legacy products carry no platform data, and
// genre/publisher selections are translated to the legacy category/supplier
// ids the reconciliation recorded.
func (s *GameService) queryLegacy(ctx context.Context, criteria catalog.FilterCriteria, sortKey string, page int) ([]catalog.CommonGame, int64, error) {
	if s.legacyStore == nil || len(criteria.Platforms) > 0 {
		return nil, 0, nil
	}

	categoryIDs, ok, err := s.mapLegacyIDs(ctx, &models.Genre{}, "legacy_category_id", criteria.Genres)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to map genres to legacy categories: %w", err)
	}
	if !ok {
		return nil, 0, nil
	}

	supplierIDs, ok, err := s.mapLegacyIDs(ctx, &models.Publisher{}, "legacy_supplier_id", criteria.Publishers)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to map publishers to legacy suppliers: %w", err)
	}
	if !ok {
		return nil, 0, nil
	}

	products, err := s.legacyStore.Products(ctx)
	if err != nil {
		// The listing degrades to primary-only rather than failing when
		// the legacy mirror is unreachable.
		s.logger.WithError(err).Warn("legacy store unavailable, serving primary store only")
		return nil, 0, nil
	}

	legacyCount := catalog.NewLegacyCountingLimitStage(page, criteria.PageSize)
	legacyPipeline := catalog.NewPipeline[[]legacy.Product](
		catalog.LegacyNameFilter(criteria.Name),
		catalog.LegacyPriceFilter(criteria.MinPrice, criteria.MaxPrice),
		catalog.LegacyCategoryFilter(categoryIDs),
		catalog.LegacySupplierFilter(supplierIDs),
		catalog.LegacyPublishedWithinFilter(criteria.PublishedWithin),
		catalog.LegacySortStage(sortKey),
	).Then(legacyCount)

	filtered := legacyPipeline.Run(products)

	common := make([]catalog.CommonGame, 0, len(filtered))
	for i := range filtered {
		common = append(common, catalog.NewCommonGame(catalog.SourceLegacy, &filtered[i]))
	}
	return common, legacyCount.Total(), nil
}

// mapLegacyIDs resolves selected primary-store ids to their recorded legacy
// ids via the given column. ok is false when a non-empty selection maps to
// no legacy ids, which means the legacy source can match nothing.
func (s *GameService) mapLegacyIDs(ctx context.Context, model interface{}, column string, ids []string) ([]string, bool, error) {
	if len(ids) == 0 {
		return nil, true, nil
	}

	parsed := catalog.ParseUUIDs(ids)
	if len(parsed) == 0 {
		return nil, false, nil
	}

	var legacyIDs []int
	if err := s.db.WithContext(ctx).Model(model).
		Where("id IN ? AND "+column+" IS NOT NULL", parsed).
		Pluck(column, &legacyIDs).Error; err != nil {
		return nil, false, err
	}
	if len(legacyIDs) == 0 {
		return nil, false, nil
	}

	mapped := make([]string, 0, len(legacyIDs))
	for _, id := range legacyIDs {
		mapped = append(mapped, fmt.Sprintf("%d", id))
	}
	return mapped, true, nil
}

func (s *GameService) commentCounts(ctx context.Context, games []models.Game) (map[uuid.UUID]int64, error) {
	counts := make(map[uuid.UUID]int64, len(games))
	if len(games) == 0 {
		return counts, nil
	}

	ids := make([]uuid.UUID, 0, len(games))
	for i := range games {
		ids = append(ids, games[i].ID)
	}

	var rows []struct {
		GameID uuid.UUID
		Count  int64
	}
	if err := s.db.WithContext(ctx).Model(&models.Comment{}).
		Select("game_id, COUNT(*) as count").
		Where("game_id IN ?", ids).
		Group("game_id").
		Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to count comments: %w", err)
	}

	for _, row := range rows {
		counts[row.GameID] = row.Count
	}
	return counts, nil
}

// GetGameByKey reads a single game. A key absent from the primary store is
// looked up in the legacy mirror and, when found, copied into the primary
// store before being returned, so every individually-read game ends up
// primary-store resident.
func (s *GameService) GetGameByKey(ctx context.Context, key string) (*models.Game, error) {
	var game models.Game
	err := s.db.WithContext(ctx).
		Preload("Genres").Preload("Platforms").Preload("Publisher").
		Where("key = ?", key).First(&game).Error
	if err == nil {
		s.recordView(game.ID)
		return &game, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("database error: %w", err)
	}

	if s.legacyStore == nil {
		return nil, errors.New("game not found")
	}

	product, err := s.legacyStore.ProductByKey(ctx, key)
	if err != nil {
		if errors.Is(err, legacy.ErrNotFound) {
			return nil, errors.New("game not found")
		}
		return nil, fmt.Errorf("legacy store error: %w", err)
	}

	copied, err := s.reconciler.ReconcileProduct(ctx, product)
	if err != nil {
		return nil, fmt.Errorf("failed to reconcile legacy product: %w", err)
	}

	s.recordView(copied.ID)
	return copied, nil
}

// recordView bumps the view counter off the request path.
func (s *GameService) recordView(gameID uuid.UUID) {
	go func() {
		if err := s.db.Model(&models.Game{}).
			Where("id = ?", gameID).
			UpdateColumn("view_count", gorm.Expr("view_count + 1")).Error; err != nil {
			s.logger.WithError(err).WithField("game_id", gameID).Warn("failed to record view")
		}
	}()
}

func (s *GameService) CreateGame(ctx context.Context, req *CreateGameRequest) (*models.Game, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	key := req.Key
	if key == "" {
		key = utils.Slugify(req.Name)
	}

	var existing models.Game
	err := s.db.WithContext(ctx).Where("key = ?", key).First(&existing).Error
	if err == nil {
		return nil, errors.New("game key is already taken")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("database error: %w", err)
	}

	game := &models.Game{
		Key:          key,
		Name:         req.Name,
		Description:  req.Description,
		Price:        req.Price,
		UnitsInStock: req.UnitsInStock,
		Screenshots:  pq.StringArray(req.Screenshots),
	}

	if req.PublisherID != nil {
		publisherID, err := uuid.Parse(*req.PublisherID)
		if err != nil {
			return nil, errors.New("invalid publisher id")
		}
		game.PublisherID = &publisherID
	}

	if err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(game).Error; err != nil {
			return fmt.Errorf("failed to create game: %w", err)
		}
		if err := s.replaceAssociations(tx, game, req.GenreIDs, req.PlatformIDs); err != nil {
			return err
		}
		return nil
	}); err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{"key": game.Key, "name": game.Name}).Info("game created")
	return game, nil
}

func (s *GameService) UpdateGame(ctx context.Context, key string, req *UpdateGameRequest) (*models.Game, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	// Single reads reconcile legacy records, so an update addressed to a
	// legacy-only key copies it first and then applies on the copy.
	game, err := s.GetGameByKey(ctx, key)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Price != nil {
		updates["price"] = *req.Price
	}
	if req.UnitsInStock != nil {
		updates["units_in_stock"] = *req.UnitsInStock
	}
	if req.Discontinued != nil {
		updates["discontinued"] = *req.Discontinued
	}
	if req.Screenshots != nil {
		updates["screenshots"] = pq.StringArray(req.Screenshots)
	}
	if req.PublisherID != nil {
		publisherID, err := uuid.Parse(*req.PublisherID)
		if err != nil {
			return nil, errors.New("invalid publisher id")
		}
		updates["publisher_id"] = publisherID
	}

	if err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(updates) > 0 {
			if err := tx.Model(game).Updates(updates).Error; err != nil {
				return fmt.Errorf("failed to update game: %w", err)
			}
		}
		if err := s.replaceAssociations(tx, game, req.GenreIDs, req.PlatformIDs); err != nil {
			return err
		}
		return nil
	}); err != nil {
		return nil, err
	}

	return s.GetGameByKey(ctx, key)
}

func (s *GameService) DeleteGame(ctx context.Context, key string) error {
	var game models.Game
	if err := s.db.WithContext(ctx).Where("key = ?", key).First(&game).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New("game not found")
		}
		return fmt.Errorf("database error: %w", err)
	}

	if err := s.db.WithContext(ctx).Delete(&game).Error; err != nil {
		return fmt.Errorf("failed to delete game: %w", err)
	}

	s.logger.WithField("key", key).Info("game deleted")
	return nil
}

func (s *GameService) replaceAssociations(tx *gorm.DB, game *models.Game, genreIDs, platformIDs []string) error {
	if genreIDs != nil {
		var genres []models.Genre
		if err := tx.Where("id IN ?", catalog.ParseUUIDs(genreIDs)).Find(&genres).Error; err != nil {
			return fmt.Errorf("failed to load genres: %w", err)
		}
		if err := tx.Model(game).Association("Genres").Replace(genres); err != nil {
			return fmt.Errorf("failed to set genres: %w", err)
		}
	}
	if platformIDs != nil {
		var platforms []models.Platform
		if err := tx.Where("id IN ?", catalog.ParseUUIDs(platformIDs)).Find(&platforms).Error; err != nil {
			return fmt.Errorf("failed to load platforms: %w", err)
		}
		if err := tx.Model(game).Association("Platforms").Replace(platforms); err != nil {
			return fmt.Errorf("failed to set platforms: %w", err)
		}
	}
	return nil
}

// UploadGameImage stores the cover image and records its public URL.
func (s *GameService) UploadGameImage(ctx context.Context, key string, data []byte, contentType string) (*models.Game, error) {
	game, err := s.GetGameByKey(ctx, key)
	if err != nil {
		return nil, err
	}

	url, err := s.storageService.UploadGameImage(ctx, game.Key, data, contentType)
	if err != nil {
		return nil, fmt.Errorf("failed to upload image: %w", err)
	}

	if err := s.db.WithContext(ctx).Model(game).Update("image_url", url).Error; err != nil {
		return nil, fmt.Errorf("failed to save image url: %w", err)
	}
	game.ImageURL = url
	return game, nil
}

// DownloadGame returns a short-lived download link for a purchased game.
func (s *GameService) DownloadGame(ctx context.Context, userID uuid.UUID, key string) (string, error) {
	var game models.Game
	if err := s.db.WithContext(ctx).Where("key = ?", key).First(&game).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", errors.New("game not found")
		}
		return "", fmt.Errorf("database error: %w", err)
	}

	var count int64
	if err := s.db.WithContext(ctx).Model(&models.OrderDetail{}).
		Joins("JOIN orders ON orders.id = order_details.order_id").
		Where("orders.customer_id = ? AND orders.status IN ? AND order_details.game_key = ?",
			userID, []models.OrderStatus{models.OrderStatusPaid, models.OrderStatusShipped}, key).
		Count(&count).Error; err != nil {
		return "", fmt.Errorf("database error: %w", err)
	}
	if count == 0 {
		return "", errors.New("game has not been purchased")
	}
	if game.FileKey == "" {
		return "", errors.New("game has no downloadable file")
	}

	url, err := s.storageService.PresignDownload(ctx, game.FileKey, 15*time.Minute)
	if err != nil {
		return "", fmt.Errorf("failed to presign download: %w", err)
	}
	return url, nil
}
