package database

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"

	"github.com/mapboard-app/mapboard/internal/models"
	"gorm.io/gorm"
)

// ready flips to true exactly once, after every reconciliation step has
// completed. It never reverts for the lifetime of the process; the readiness
// middleware rejects data-dependent requests while it is false.
var ready atomic.Bool

func Ready() bool {
	return ready.Load()
}

// categorySeed is one entry of the canonical forum category catalog. Aliases
// are legacy names (matched case-insensitively) renamed to the canonical one.
type categorySeed struct {
	Name        string
	Description string
	Icon        string
	Order       int
	Aliases     []string
}

var categoryCatalog = []categorySeed{
	{Name: "Building", Description: "Discuss buildings and architectural structures", Icon: "🏢", Order: 1,
		Aliases: []string{"announcements", "announcement", "buildings"}},
	{Name: "Landmarks", Description: "Share and discuss notable landmarks", Icon: "🗼", Order: 2,
		Aliases: []string{"landmark"}},
	{Name: "Parks", Description: "Talk about parks and recreational areas", Icon: "🌳", Order: 3,
		Aliases: []string{"park"}},
	{Name: "Infrastructures", Description: "Discuss infrastructure and public facilities", Icon: "🏗️", Order: 4,
		Aliases: []string{"infrastructure"}},
}

var generalDiscussion = categorySeed{
	Name:        "General Discussion",
	Description: "General discussions and community chat",
	Icon:        "💬",
	Order:       0,
}

// Categories from earlier deployments that no longer exist in the product.
var removedCategoryNames = []string{"Help & Support", "Help and Support", "Feedback"}

// Reconciler brings the schema and its seed data into canonical shape. Every
// step re-checks live state before acting, so the whole sequence is safe to
// re-run after a partial failure.
type Reconciler struct {
	db *gorm.DB

	// tables created fresh during this run; one-time normalizations only
	// apply to tables that pre-existed.
	created map[string]bool

	// set when the can_draw column pre-existed on a pre-existing users table
	normalizePrivileges bool
}

type step struct {
	name string
	run  func() error
}

func NewReconciler(db *gorm.DB) *Reconciler {
	return &Reconciler{db: db, created: make(map[string]bool)}
}

// Reconcile runs the full sequence against db and, on success, marks the
// process ready. A step failure aborts the sequence; the error is returned
// and readiness stays false.
func Reconcile(db *gorm.DB) error {
	r := NewReconciler(db)
	if err := r.Run(); err != nil {
		return err
	}
	ready.Store(true)
	return nil
}

func (r *Reconciler) Run() error {
	for _, s := range r.steps() {
		if err := s.run(); err != nil {
			return fmt.Errorf("reconcile step %q: %w", s.name, err)
		}
		slog.Debug("reconcile step complete", "step", s.name)
	}
	return nil
}

func (r *Reconciler) steps() []step {
	return []step{
		{"ensure-tables", r.ensureTables},
		{"users-columns", r.ensureUserColumns},
		{"normalize-privileges", r.normalizeDrawingPrivileges},
		{"drawings-columns", r.ensureDrawingColumns},
		{"votes-columns", r.ensureVoteColumns},
		{"comments-columns", r.ensureCommentColumns},
		{"ensure-indexes", r.ensureIndexes},
		{"category-catalog", r.reconcileCategoryCatalog},
		{"general-discussion", r.ensureGeneralDiscussion},
		{"category-denylist", r.removeLegacyCategories},
		{"category-duplicates", r.mergeDuplicateCategories},
	}
}

// ensureTables creates any missing base table, in FK dependency order, and
// records which ones were created fresh this run.
func (r *Reconciler) ensureTables() error {
	m := r.db.Migrator()
	tables := []struct {
		name  string
		model interface{}
	}{
		{"users", &models.User{}},
		{"drawings", &models.Drawing{}},
		{"forum_categories", &models.ForumCategory{}},
		{"forum_threads", &models.ForumThread{}},
		{"comments", &models.Comment{}},
		{"votes", &models.Vote{}},
		{"system_logs", &models.SystemLog{}},
	}
	for _, t := range tables {
		if m.HasTable(t.model) {
			continue
		}
		if err := m.CreateTable(t.model); err != nil {
			return fmt.Errorf("create table %s: %w", t.name, err)
		}
		r.created[t.name] = true
		slog.Info("created table", "table", t.name)
	}
	return nil
}

// ensureUserColumns backfills the admin and drawing-privilege flags on users
// tables that predate them.
func (r *Reconciler) ensureUserColumns() error {
	m := r.db.Migrator()

	if !m.HasColumn(&models.User{}, "is_admin") {
		if err := m.AddColumn(&models.User{}, "IsAdmin"); err != nil {
			return err
		}
		slog.Info("added column", "table", "users", "column", "is_admin")
	}

	if m.HasColumn(&models.User{}, "can_draw") {
		// Column pre-existed only if we did not just create the table;
		// in that case the one-time privilege reset applies.
		r.normalizePrivileges = !r.created["users"]
		return nil
	}
	if err := m.AddColumn(&models.User{}, "CanDraw"); err != nil {
		return err
	}
	slog.Info("added column", "table", "users", "column", "can_draw")
	return nil
}

// normalizeDrawingPrivileges resets drawing privileges on pre-existing
// deployments: only admins keep can_draw, NULLs collapse to false.
func (r *Reconciler) normalizeDrawingPrivileges() error {
	if !r.normalizePrivileges {
		return nil
	}

	if err := r.db.Model(&models.User{}).
		Where("is_admin = ?", false).
		Update("can_draw", false).Error; err != nil {
		return err
	}
	if err := r.db.Model(&models.User{}).
		Where("can_draw IS NULL").
		Update("can_draw", false).Error; err != nil {
		return err
	}
	if err := r.db.Model(&models.User{}).
		Where("is_admin = ? AND can_draw = ?", true, false).
		Update("can_draw", true).Error; err != nil {
		return err
	}
	slog.Info("reset drawing privileges: non-admins revoked, admins granted")
	return nil
}

// columnBackfill describes one column a legacy table may be missing. For
// foreign keys, relation names the association whose constraint (with its
// ON DELETE action) must be restored along with the column; a bare AddColumn
// would leave the column without its referential behavior.
type columnBackfill struct {
	column   string
	field    string
	relation string
}

func (r *Reconciler) ensureDrawingColumns() error {
	return r.addMissingColumns(&models.Drawing{}, "drawings", []columnBackfill{
		{column: "place_type", field: "PlaceType"},
		{column: "user_id", field: "UserID", relation: "User"},
	})
}

func (r *Reconciler) ensureVoteColumns() error {
	return r.addMissingColumns(&models.Vote{}, "votes", []columnBackfill{
		{column: "vote_type", field: "VoteType"},
	})
}

func (r *Reconciler) ensureCommentColumns() error {
	return r.addMissingColumns(&models.Comment{}, "comments", []columnBackfill{
		{column: "drawing_id", field: "DrawingID", relation: "Drawing"},
		{column: "thread_id", field: "ThreadID", relation: "Thread"},
	})
}

func (r *Reconciler) addMissingColumns(model interface{}, table string, columns []columnBackfill) error {
	m := r.db.Migrator()
	for _, col := range columns {
		if m.HasColumn(model, col.column) {
			continue
		}
		if err := m.AddColumn(model, col.field); err != nil {
			return fmt.Errorf("add column %s.%s: %w", table, col.column, err)
		}
		slog.Info("added column", "table", table, "column", col.column)

		if col.relation == "" || m.HasConstraint(model, col.relation) {
			continue
		}
		if err := m.CreateConstraint(model, col.relation); err != nil {
			return fmt.Errorf("add constraint for %s.%s: %w", table, col.column, err)
		}
		slog.Info("added foreign key", "table", table, "column", col.column)
	}
	return nil
}

// ensureIndexes creates the indexes the query paths rely on. Index
// definitions live on the model tags; creation is guarded by existence
// checks so legacy tables pick them up.
func (r *Reconciler) ensureIndexes() error {
	m := r.db.Migrator()
	indexes := []struct {
		model interface{}
		name  string
	}{
		{&models.User{}, "idx_users_username"},
		{&models.Drawing{}, "idx_drawings_type"},
		{&models.Drawing{}, "idx_drawings_created_at"},
		{&models.Drawing{}, "idx_drawings_user_id"},
		{&models.Comment{}, "idx_comments_created_at"},
		{&models.Comment{}, "idx_comments_user_id"},
		{&models.Comment{}, "idx_comments_drawing_id"},
		{&models.Comment{}, "idx_comments_thread_id"},
		{&models.Vote{}, "idx_votes_drawing_id"},
		{&models.Vote{}, "idx_votes_user_id"},
		{&models.Vote{}, "idx_votes_drawing_user"},
		{&models.ForumCategory{}, "idx_forum_categories_order"},
		{&models.ForumThread{}, "idx_forum_threads_category_id"},
		{&models.ForumThread{}, "idx_forum_threads_last_post_at"},
	}
	for _, idx := range indexes {
		if m.HasIndex(idx.model, idx.name) {
			continue
		}
		if err := m.CreateIndex(idx.model, idx.name); err != nil {
			return fmt.Errorf("create index %s: %w", idx.name, err)
		}
	}
	return nil
}

// reconcileCategoryCatalog renames legacy aliases to the canonical
// capitalized names, inserts canonical categories that are missing entirely,
// and refreshes description/icon/order of the ones already present.
func (r *Reconciler) reconcileCategoryCatalog() error {
	for _, seed := range categoryCatalog {
		for _, alias := range seed.Aliases {
			if err := r.db.Model(&models.ForumCategory{}).
				Where("LOWER(name) = ?", strings.ToLower(alias)).
				Updates(map[string]interface{}{
					"name":        seed.Name,
					"description": seed.Description,
					"icon":        seed.Icon,
					"order_index": seed.Order,
				}).Error; err != nil {
				return err
			}
		}
		if err := r.upsertCategory(seed); err != nil {
			return err
		}
	}
	return nil
}

func (r *Reconciler) ensureGeneralDiscussion() error {
	return r.upsertCategory(generalDiscussion)
}

func (r *Reconciler) upsertCategory(seed categorySeed) error {
	var existing models.ForumCategory
	err := r.db.Where("LOWER(name) = ?", strings.ToLower(seed.Name)).First(&existing).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		cat := models.ForumCategory{
			Name:        seed.Name,
			Description: seed.Description,
			Icon:        seed.Icon,
			OrderIndex:  seed.Order,
		}
		if err := r.db.Create(&cat).Error; err != nil {
			return err
		}
		slog.Info("created forum category", "name", seed.Name)
		return nil
	case err != nil:
		return err
	default:
		return r.db.Model(&models.ForumCategory{}).
			Where("id = ?", existing.ID).
			Updates(map[string]interface{}{
				"name":        seed.Name,
				"description": seed.Description,
				"icon":        seed.Icon,
				"order_index": seed.Order,
			}).Error
	}
}

// removeLegacyCategories deletes the denylisted categories by exact
// case-insensitive, trimmed name match.
func (r *Reconciler) removeLegacyCategories() error {
	for _, name := range removedCategoryNames {
		res := r.db.Where("LOWER(TRIM(name)) = ?", strings.ToLower(strings.TrimSpace(name))).
			Delete(&models.ForumCategory{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			slog.Info("removed legacy forum category", "name", name)
		}
	}
	return nil
}

// mergeDuplicateCategories collapses categories that differ only by case:
// the lowest-ID row survives, threads referencing a duplicate are reassigned
// to it, and the duplicates are deleted.
func (r *Reconciler) mergeDuplicateCategories() error {
	var categories []models.ForumCategory
	if err := r.db.Order("id").Find(&categories).Error; err != nil {
		return err
	}

	byName := make(map[string][]models.ForumCategory)
	order := make([]string, 0, len(categories))
	for _, cat := range categories {
		key := strings.ToLower(cat.Name)
		if _, seen := byName[key]; !seen {
			order = append(order, key)
		}
		byName[key] = append(byName[key], cat)
	}

	for _, key := range order {
		group := byName[key]
		if len(group) < 2 {
			continue
		}
		keep := group[0]
		for _, dup := range group[1:] {
			if err := r.db.Model(&models.ForumThread{}).
				Where("category_id = ?", dup.ID).
				Update("category_id", keep.ID).Error; err != nil {
				return err
			}
			if err := r.db.Delete(&models.ForumCategory{}, dup.ID).Error; err != nil {
				return err
			}
			slog.Info("merged duplicate forum category", "kept", keep.Name, "removed", dup.Name)
		}
	}
	return nil
}
