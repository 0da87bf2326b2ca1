package repositories_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"patient-registry/internal/config"
	"patient-registry/internal/database"
	"patient-registry/internal/domain/entities"
	"patient-registry/internal/domain/repositories"
)

func openTestDB(t *testing.T) *database.Database {
	t.Helper()

	cfg := config.Default()
	cfg.Database.Path = filepath.Join(t.TempDir(), "patients.db") + "?_pragma=busy_timeout(5000)"

	ctx := context.Background()
	db, err := database.New(ctx, cfg, zerolog.Nop())
	require.NoError(t, err, "opening sqlite database")
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, db.Migrate(ctx, config.MigrationVersioned), "migrating schema")
	return db
}

// backends returns one fresh repository per implementation.
func backends(t *testing.T) map[string]func(t *testing.T) repositories.PatientRepositoryContract {
	return map[string]func(t *testing.T) repositories.PatientRepositoryContract{
		"gorm": func(t *testing.T) repositories.PatientRepositoryContract {
			return repositories.NewPatientGormRepository(openTestDB(t).DB)
		},
		"sqlx": func(t *testing.T) repositories.PatientRepositoryContract {
			db := openTestDB(t)
			x, err := db.SQLX(context.Background())
			require.NoError(t, err)
			return repositories.NewPatientSQLXRepository(x)
		},
	}
}

func newPatient(nom string, score int) *entities.Patient {
	return &entities.Patient{
		Nom:           nom,
		DateNaissance: time.Date(1985, time.March, 12, 0, 0, 0, 0, time.UTC),
		Malade:        score%2 == 0,
		Score:         score,
	}
}

func nomsOf(patients []*entities.Patient) []string {
	noms := make([]string, 0, len(patients))
	for _, p := range patients {
		noms = append(noms, p.Nom)
	}
	return noms
}

func TestPatientRepositories(t *testing.T) {
	for name, newRepo := range backends(t) {
		t.Run(name, func(t *testing.T) {
			t.Run("save assigns id and keeps fields", func(t *testing.T) {
				repo := newRepo(t)
				ctx := context.Background()

				in := newPatient("Dupont", 4)
				saved, err := repo.Save(ctx, in)
				require.NoError(t, err)
				assert.NotZero(t, saved.ID, "Save should assign an id")
				assert.Equal(t, "Dupont", saved.Nom)
				assert.Equal(t, 4, saved.Score)
				assert.True(t, saved.Malade)

				found, err := repo.FindByID(ctx, saved.ID)
				require.NoError(t, err)
				require.NotNil(t, found)
				assert.Equal(t, saved.ID, found.ID)
				assert.Equal(t, "Dupont", found.Nom)
				assert.True(t, in.DateNaissance.Equal(found.DateNaissance), "date should round-trip, got %s", found.DateNaissance)
				assert.True(t, found.Malade)
				assert.Equal(t, 4, found.Score)
			})

			t.Run("find by unknown id is empty", func(t *testing.T) {
				repo := newRepo(t)

				found, err := repo.FindByID(context.Background(), 9999)
				assert.NoError(t, err)
				assert.Nil(t, found)

				exists, err := repo.ExistsByID(context.Background(), 9999)
				assert.NoError(t, err)
				assert.False(t, exists)
			})

			t.Run("save with existing id updates the row", func(t *testing.T) {
				repo := newRepo(t)
				ctx := context.Background()

				saved, err := repo.Save(ctx, newPatient("Martin", 1))
				require.NoError(t, err)
				id := saved.ID

				saved.Nom = "Martin-Durand"
				saved.Malade = true
				saved.Score = 10
				_, err = repo.Save(ctx, saved)
				require.NoError(t, err)

				found, err := repo.FindByID(ctx, id)
				require.NoError(t, err)
				require.NotNil(t, found)
				assert.Equal(t, id, found.ID, "id must not change on update")
				assert.Equal(t, "Martin-Durand", found.Nom)
				assert.True(t, found.Malade)
				assert.Equal(t, 10, found.Score)

				count, err := repo.Count(ctx)
				require.NoError(t, err)
				assert.EqualValues(t, 1, count, "update must not insert a second row")
			})

			t.Run("save with unknown id inserts it", func(t *testing.T) {
				repo := newRepo(t)
				ctx := context.Background()

				p := newPatient("Bernard", 3)
				p.ID = 42
				_, err := repo.Save(ctx, p)
				require.NoError(t, err)

				found, err := repo.FindByID(ctx, 42)
				require.NoError(t, err)
				require.NotNil(t, found)
				assert.Equal(t, "Bernard", found.Nom)
			})

			t.Run("save all and find all", func(t *testing.T) {
				repo := newRepo(t)
				ctx := context.Background()

				saved, err := repo.SaveAll(ctx, []*entities.Patient{
					newPatient("Alice", 1),
					newPatient("Bob", 2),
					newPatient("Alicia", 3),
				})
				require.NoError(t, err)
				require.Len(t, saved, 3)
				for _, p := range saved {
					assert.NotZero(t, p.ID, "SaveAll should assign ids")
				}

				all, err := repo.FindAll(ctx)
				require.NoError(t, err)
				assert.Equal(t, []string{"Alice", "Bob", "Alicia"}, nomsOf(all))

				count, err := repo.Count(ctx)
				require.NoError(t, err)
				assert.EqualValues(t, 3, count)
			})

			t.Run("save all rolls back on failure", func(t *testing.T) {
				repo := newRepo(t)
				ctx := context.Background()

				_, err := repo.SaveAll(ctx, []*entities.Patient{newPatient("Alice", 1), nil})
				assert.Error(t, err)

				count, err := repo.Count(ctx)
				require.NoError(t, err)
				assert.Zero(t, count, "no patient should remain after a failed batch")
			})

			t.Run("find by nom is exact", func(t *testing.T) {
				repo := newRepo(t)
				ctx := context.Background()

				_, err := repo.SaveAll(ctx, []*entities.Patient{
					newPatient("Alice", 1),
					newPatient("Alicia", 2),
					newPatient("Alice", 3),
				})
				require.NoError(t, err)

				found, err := repo.FindByNom(ctx, "Alice")
				require.NoError(t, err)
				assert.Equal(t, []string{"Alice", "Alice"}, nomsOf(found))

				none, err := repo.FindByNom(ctx, "Ali")
				require.NoError(t, err)
				assert.Empty(t, none)
			})

			t.Run("find by nom like", func(t *testing.T) {
				repo := newRepo(t)
				ctx := context.Background()

				_, err := repo.SaveAll(ctx, []*entities.Patient{
					newPatient("Alice", 1),
					newPatient("Bob", 2),
					newPatient("Malicia", 3),
				})
				require.NoError(t, err)

				found, err := repo.FindByNomLike(ctx, "lic")
				require.NoError(t, err)
				assert.Equal(t, []string{"Alice", "Malicia"}, nomsOf(found), "bare fragment matches as substring")

				prefixed, err := repo.FindByNomLike(ctx, "Al%")
				require.NoError(t, err)
				assert.Equal(t, []string{"Alice"}, nomsOf(prefixed), "explicit wildcard is passed through")
			})

			t.Run("delete by id", func(t *testing.T) {
				repo := newRepo(t)
				ctx := context.Background()

				saved, err := repo.Save(ctx, newPatient("Petit", 5))
				require.NoError(t, err)

				require.NoError(t, repo.DeleteByID(ctx, saved.ID))

				found, err := repo.FindByID(ctx, saved.ID)
				assert.NoError(t, err)
				assert.Nil(t, found, "deleted patient should not be found")

				assert.NoError(t, repo.DeleteByID(ctx, saved.ID), "deleting a missing id is not an error")
			})
		})
	}
}

func TestLikePattern(t *testing.T) {
	assert.Equal(t, "%lic%", repositories.LikePattern("lic"))
	assert.Equal(t, "Al%", repositories.LikePattern("Al%"))
	assert.Equal(t, "%%", repositories.LikePattern(""))
}
