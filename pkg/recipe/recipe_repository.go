package recipe

import (
	"CulinaShare-Backend/domain"
	"CulinaShare-Backend/entities"
	"CulinaShare-Backend/pkg/database"
	"context"
	"errors"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const defaultListingLimit = 10

type (
	// RecipeUpdate carries column changes and, when ReplaceTags is set, the
	// full new set of dietary tags.
	RecipeUpdate struct {
		Fields      map[string]interface{}
		DietaryTags []string
		ReplaceTags bool
	}

	// RecipeDetails is a recipe with its owner, children and reviews loaded.
	// The caller fields are only filled when a user id was given.
	RecipeDetails struct {
		Recipe     entities.Recipe
		UserRating *int
		UserLiked  bool
		UserSaved  bool
	}

	RecipeRepository interface {
		CreateRecipe(ctx context.Context, recipe *entities.Recipe) error
		GetRecipeByID(ctx context.Context, id string) (*entities.Recipe, error)
		UpdateRecipe(ctx context.Context, id string, update RecipeUpdate) (*entities.Recipe, error)
		DeleteRecipe(ctx context.Context, id string) error
		GetRecipeWithDetails(ctx context.Context, id, userID string) (*RecipeDetails, error)
		SearchRecipes(ctx context.Context, req domain.RecipeSearchRequest) ([]entities.Recipe, int64, error)
		GetFeaturedRecipes(ctx context.Context, limit int) ([]entities.Recipe, error)
		GetPopularRecipes(ctx context.Context, limit int) ([]entities.Recipe, error)
		GetRecentRecipes(ctx context.Context, limit int) ([]entities.Recipe, error)
		IncrementViewCount(ctx context.Context, id string) error
		ToggleLike(ctx context.Context, recipeID, userID string) (bool, error)
		ToggleSave(ctx context.Context, recipeID, userID string) (bool, error)
		GetSavedRecipes(ctx context.Context, userID string, page, limit int) ([]entities.Recipe, int64, error)
		GetRecipesByUser(ctx context.Context, userID string, includeDrafts bool, page, limit int) ([]entities.Recipe, int64, error)
	}

	recipeRepository struct {
		*database.Repository[entities.Recipe]
		db *gorm.DB
	}
)

func NewRecipeRepository(db *gorm.DB) RecipeRepository {
	return &recipeRepository{
		Repository: database.NewRepository[entities.Recipe](db, "recipes"),
		db:         db,
	}
}

// CreateRecipe stores the recipe with its tags, ingredients and instructions.
// Counters start at zero and the recipe starts as an unfeatured draft.
func (r *recipeRepository) CreateRecipe(ctx context.Context, recipe *entities.Recipe) (err error) {
	defer database.Track(&err, r.Collection(), "create_recipe", time.Now())

	recipe.TotalTime = recipe.PrepTime + recipe.CookTime
	recipe.ViewCount = 0
	recipe.LikeCount = 0
	recipe.AverageRating = 0
	recipe.TotalRatings = 0
	recipe.IsPublished = false
	recipe.IsFeatured = false

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(recipe).Error; err != nil {
			return err
		}
		for i := range recipe.DietaryTags {
			recipe.DietaryTags[i].RecipeID = recipe.ID
		}
		for i := range recipe.Ingredients {
			recipe.Ingredients[i].RecipeID = recipe.ID
		}
		for i := range recipe.Instructions {
			recipe.Instructions[i].RecipeID = recipe.ID
		}
		if len(recipe.DietaryTags) > 0 {
			if err := tx.Create(&recipe.DietaryTags).Error; err != nil {
				return err
			}
		}
		if len(recipe.Ingredients) > 0 {
			if err := tx.Create(&recipe.Ingredients).Error; err != nil {
				return err
			}
		}
		if len(recipe.Instructions) > 0 {
			if err := tx.Create(&recipe.Instructions).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// GetRecipeByID returns the recipe with its dietary tags, or nil when absent.
func (r *recipeRepository) GetRecipeByID(ctx context.Context, id string) (_ *entities.Recipe, err error) {
	defer database.Track(&err, r.Collection(), "get_by_id", time.Now())

	var recipe entities.Recipe
	if err := r.db.WithContext(ctx).Preload("DietaryTags").Where("id = ?", id).Take(&recipe).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &recipe, nil
}

func (r *recipeRepository) UpdateRecipe(ctx context.Context, id string, update RecipeUpdate) (_ *entities.Recipe, err error) {
	defer database.Track(&err, r.Collection(), "update_recipe", time.Now())

	fields := make(map[string]interface{}, len(update.Fields)+1)
	for key, value := range update.Fields {
		fields[key] = value
	}
	prep, hasPrep := fields["prep_time"].(int)
	cook, hasCook := fields["cook_time"].(int)
	if hasPrep && hasCook {
		fields["total_time"] = prep + cook
	}

	recipeID, err := uuid.Parse(id)
	if err != nil {
		return nil, domain.ErrParseUUID
	}

	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := r.WithTx(tx).Update(ctx, id, fields); err != nil {
			return err
		}
		if !update.ReplaceTags {
			return nil
		}
		if err := tx.Where("recipe_id = ?", id).Delete(&entities.RecipeDietaryTag{}).Error; err != nil {
			return err
		}
		tags := newTagRows(recipeID, update.DietaryTags)
		if len(tags) == 0 {
			return nil
		}
		return tx.Create(&tags).Error
	})
	if err != nil {
		return nil, err
	}
	return r.GetRecipeByID(ctx, id)
}

// DeleteRecipe removes the recipe and everything hanging off it.
func (r *recipeRepository) DeleteRecipe(ctx context.Context, id string) (err error) {
	defer database.Track(&err, r.Collection(), "delete_recipe", time.Now())

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		children := []interface{}{
			&entities.RecipeLike{},
			&entities.RecipeSave{},
			&entities.Review{},
			&entities.Ingredient{},
			&entities.Instruction{},
			&entities.RecipeDietaryTag{},
		}
		for _, model := range children {
			if err := tx.Where("recipe_id = ?", id).Delete(model).Error; err != nil {
				return err
			}
		}
		return r.WithTx(tx).Delete(ctx, id)
	})
}

func (r *recipeRepository) GetRecipeWithDetails(ctx context.Context, id, userID string) (_ *RecipeDetails, err error) {
	defer database.Track(&err, r.Collection(), "get_with_details", time.Now())

	db := r.db.WithContext(ctx)
	var recipe entities.Recipe
	err = db.
		Preload("User").
		Preload("DietaryTags").
		Preload("Ingredients", func(tx *gorm.DB) *gorm.DB { return tx.Order("order_index asc") }).
		Preload("Instructions", func(tx *gorm.DB) *gorm.DB { return tx.Order("step_number asc") }).
		Preload("Reviews", func(tx *gorm.DB) *gorm.DB { return tx.Order("created_at desc") }).
		Preload("Reviews.User").
		Where("id = ?", id).
		Take(&recipe).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	details := &RecipeDetails{Recipe: recipe}
	if userID == "" {
		return details, nil
	}

	var ratings []int
	if err := db.Model(&entities.Review{}).
		Where("recipe_id = ? AND user_id = ?", id, userID).
		Limit(1).
		Pluck("rating", &ratings).Error; err != nil {
		return nil, err
	}
	if len(ratings) > 0 {
		details.UserRating = &ratings[0]
	}

	if details.UserLiked, err = r.hasRelation(db, &entities.RecipeLike{}, id, userID); err != nil {
		return nil, err
	}
	if details.UserSaved, err = r.hasRelation(db, &entities.RecipeSave{}, id, userID); err != nil {
		return nil, err
	}
	return details, nil
}

func (r *recipeRepository) hasRelation(db *gorm.DB, model interface{}, recipeID, userID string) (bool, error) {
	var count int64
	if err := db.Model(model).Where("recipe_id = ? AND user_id = ?", recipeID, userID).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// SearchRecipes lists published recipes matching every given criterion.
// The returned total counts the whole filtered set, not just the page.
func (r *recipeRepository) SearchRecipes(ctx context.Context, req domain.RecipeSearchRequest) (_ []entities.Recipe, _ int64, err error) {
	defer database.Track(&err, r.Collection(), "search", time.Now())

	page := domain.PaginationRequest{Page: req.Page, Limit: req.Limit}.Normalize()

	var total int64
	if err := searchQuery(r.db.WithContext(ctx), req).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var recipes []entities.Recipe
	if err := searchQuery(r.db.WithContext(ctx), req).
		Preload("DietaryTags").
		Order(searchOrder(req)).
		Offset(page.Offset()).
		Limit(page.Limit).
		Find(&recipes).Error; err != nil {
		return nil, 0, err
	}
	return recipes, total, nil
}

func searchQuery(db *gorm.DB, req domain.RecipeSearchRequest) *gorm.DB {
	query := db.Model(&entities.Recipe{}).Where("recipes.is_published = ?", true)

	if q := strings.TrimSpace(req.Query); q != "" {
		pattern := database.ContainsPattern(q)
		query = query.Where("(LOWER(recipes.title) LIKE ?"+database.LikeEscape+
			" OR LOWER(recipes.description) LIKE ?"+database.LikeEscape+")", pattern, pattern)
	}
	if req.Cuisine != "" {
		query = query.Where("recipes.cuisine = ?", req.Cuisine)
	}
	if req.Difficulty != "" {
		query = query.Where("recipes.difficulty = ?", req.Difficulty)
	}
	if req.UserID != "" {
		query = query.Where("recipes.user_id = ?", req.UserID)
	}
	if len(req.DietaryTags) > 0 {
		query = query.Where("recipes.id IN (?)",
			db.Model(&entities.RecipeDietaryTag{}).Select("recipe_id").Where("tag IN ?", req.DietaryTags))
	}
	if req.PrepTimeMax != nil {
		query = query.Where("recipes.prep_time <= ?", *req.PrepTimeMax)
	}
	if req.CookTimeMax != nil {
		query = query.Where("recipes.cook_time <= ?", *req.CookTimeMax)
	}
	if req.MinRating != nil {
		query = query.Where("recipes.average_rating >= ?", *req.MinRating)
	}
	return query
}

// searchOrder only sorts by whitelisted columns. Anything else falls back to
// newest first.
func searchOrder(req domain.RecipeSearchRequest) clause.OrderByColumn {
	field := "created_at"
	if slices.Contains(domain.RecipeSortFields, req.SortBy) {
		field = req.SortBy
	}
	desc := !strings.EqualFold(req.SortOrder, "asc")
	return clause.OrderByColumn{
		Column: clause.Column{Table: "recipes", Name: field},
		Desc:   desc,
	}
}

func (r *recipeRepository) GetFeaturedRecipes(ctx context.Context, limit int) ([]entities.Recipe, error) {
	return r.listing(ctx, "featured", limit, "created_at", func(q *gorm.DB) *gorm.DB {
		return q.Where("is_featured = ?", true)
	})
}

func (r *recipeRepository) GetPopularRecipes(ctx context.Context, limit int) ([]entities.Recipe, error) {
	return r.listing(ctx, "popular", limit, "view_count", nil)
}

func (r *recipeRepository) GetRecentRecipes(ctx context.Context, limit int) ([]entities.Recipe, error) {
	return r.listing(ctx, "recent", limit, "created_at", nil)
}

func (r *recipeRepository) listing(ctx context.Context, op string, limit int, orderBy string, scope func(*gorm.DB) *gorm.DB) (_ []entities.Recipe, err error) {
	defer database.Track(&err, r.Collection(), op, time.Now())

	if limit < 1 {
		limit = defaultListingLimit
	}
	if limit > domain.MaxLimit {
		limit = domain.MaxLimit
	}

	query := r.db.WithContext(ctx).Preload("DietaryTags").Where("is_published = ?", true)
	if scope != nil {
		query = scope(query)
	}

	var recipes []entities.Recipe
	if err := query.
		Order(clause.OrderByColumn{Column: clause.Column{Name: orderBy}, Desc: true}).
		Limit(limit).
		Find(&recipes).Error; err != nil {
		return nil, err
	}
	return recipes, nil
}

// IncrementViewCount bumps the counter in SQL so concurrent views are not lost.
func (r *recipeRepository) IncrementViewCount(ctx context.Context, id string) (err error) {
	defer database.Track(&err, r.Collection(), "increment_view", time.Now())

	return r.db.WithContext(ctx).
		Model(&entities.Recipe{}).
		Where("id = ?", id).
		UpdateColumn("view_count", gorm.Expr("view_count + ?", 1)).Error
}

func (r *recipeRepository) ToggleLike(ctx context.Context, recipeID, userID string) (liked bool, err error) {
	defer database.Track(&err, "recipe_likes", "toggle", time.Now())

	recipeUUID, userUUID, err := parsePair(recipeID, userID)
	if err != nil {
		return false, err
	}
	return r.toggle(ctx, &entities.RecipeLike{UserID: userUUID, RecipeID: recipeUUID}, recipeID, userID, "like_count")
}

func (r *recipeRepository) ToggleSave(ctx context.Context, recipeID, userID string) (saved bool, err error) {
	defer database.Track(&err, "recipe_saves", "toggle", time.Now())

	recipeUUID, userUUID, err := parsePair(recipeID, userID)
	if err != nil {
		return false, err
	}
	return r.toggle(ctx, &entities.RecipeSave{UserID: userUUID, RecipeID: recipeUUID}, recipeID, userID, "")
}

// toggle flips membership of row in its join table inside one transaction.
// The delete runs first; only when it removed nothing is the row inserted,
// and a concurrent insert of the same pair is absorbed by the unique index.
// counter, when set, is moved by the number of rows actually changed.
func (r *recipeRepository) toggle(ctx context.Context, row interface{}, recipeID, userID, counter string) (active bool, err error) {
	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("recipe_id = ? AND user_id = ?", recipeID, userID).Delete(row)
		if res.Error != nil {
			return res.Error
		}
		delta := -res.RowsAffected

		if res.RowsAffected == 0 {
			ins := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(row)
			if ins.Error != nil {
				return ins.Error
			}
			delta = ins.RowsAffected
			active = true
		}

		if counter == "" || delta == 0 {
			return nil
		}
		return tx.Model(&entities.Recipe{}).
			Where("id = ?", recipeID).
			UpdateColumn(counter, gorm.Expr(counter+" + ?", delta)).Error
	})
	return active, err
}

func parsePair(recipeID, userID string) (uuid.UUID, uuid.UUID, error) {
	recipeUUID, err := uuid.Parse(recipeID)
	if err != nil {
		return uuid.Nil, uuid.Nil, domain.ErrParseUUID
	}
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return uuid.Nil, uuid.Nil, domain.ErrParseUUID
	}
	return recipeUUID, userUUID, nil
}

// GetSavedRecipes lists the user's saved recipes, most recently saved first.
// Drafts saved before they were unpublished stay hidden unless the user owns them.
func (r *recipeRepository) GetSavedRecipes(ctx context.Context, userID string, page, limit int) (_ []entities.Recipe, _ int64, err error) {
	defer database.Track(&err, r.Collection(), "get_saved", time.Now())

	p := domain.PaginationRequest{Page: page, Limit: limit}.Normalize()
	base := func() *gorm.DB {
		return r.db.WithContext(ctx).
			Model(&entities.Recipe{}).
			Joins("JOIN recipe_saves ON recipes.id = recipe_saves.recipe_id").
			Where("recipe_saves.user_id = ?", userID).
			Where("(recipes.is_published = ? OR recipes.user_id = ?)", true, userID)
	}

	var count int64
	if err := base().Count(&count).Error; err != nil {
		return nil, 0, err
	}

	var recipes []entities.Recipe
	if err := base().
		Preload("DietaryTags").
		Order("recipe_saves.created_at desc").
		Offset(p.Offset()).
		Limit(p.Limit).
		Find(&recipes).Error; err != nil {
		return nil, 0, err
	}
	return recipes, count, nil
}

func (r *recipeRepository) GetRecipesByUser(ctx context.Context, userID string, includeDrafts bool, page, limit int) (_ []entities.Recipe, _ int64, err error) {
	defer database.Track(&err, r.Collection(), "get_by_user", time.Now())

	p := domain.PaginationRequest{Page: page, Limit: limit}.Normalize()
	base := func() *gorm.DB {
		query := r.db.WithContext(ctx).Model(&entities.Recipe{}).Where("user_id = ?", userID)
		if !includeDrafts {
			query = query.Where("is_published = ?", true)
		}
		return query
	}

	var count int64
	if err := base().Count(&count).Error; err != nil {
		return nil, 0, err
	}

	var recipes []entities.Recipe
	if err := base().
		Preload("DietaryTags").
		Order("created_at desc").
		Offset(p.Offset()).
		Limit(p.Limit).
		Find(&recipes).Error; err != nil {
		return nil, 0, err
	}
	return recipes, count, nil
}

func newTagRows(recipeID uuid.UUID, tags []string) []entities.RecipeDietaryTag {
	rows := make([]entities.RecipeDietaryTag, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, tag := range tags {
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		rows = append(rows, entities.RecipeDietaryTag{RecipeID: recipeID, Tag: tag})
	}
	return rows
}
