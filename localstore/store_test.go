package localstore_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gestionparc/fleet-api/localstore"
)

func TestStore_SeedsDefaultVehicles(t *testing.T) {
	store := localstore.New(localstore.NewMemoryBackend())

	vehicles, err := store.GetVehicles()
	assert.NoError(t, err)
	assert.Len(t, vehicles, 2)
	assert.Equal(t, "AB-123-CD", vehicles[0]["immatriculation"])
	assert.Equal(t, "EF-456-GH", vehicles[1]["immatriculation"])

	// the seed is written once, a second read does not reseed
	vehicles, err = store.GetVehicles()
	assert.NoError(t, err)
	assert.Len(t, vehicles, 2)
}

func TestStore_AddVehicle(t *testing.T) {
	store := localstore.New(localstore.NewMemoryBackend())

	err := store.AddVehicle(localstore.Record{
		"id":              "veh-003",
		"immatriculation": "IJ-789-KL",
		"marque":          "Toyota",
	})
	assert.NoError(t, err)

	vehicles, err := store.GetVehicles()
	assert.NoError(t, err)
	assert.Len(t, vehicles, 3)
	assert.Equal(t, "IJ-789-KL", vehicles[2]["immatriculation"])
}

func TestStore_UpdateVehicleMergesPartial(t *testing.T) {
	store := localstore.New(localstore.NewMemoryBackend())

	err := store.UpdateVehicle("veh-001", localstore.Record{
		"kilometrage": 40000,
		"statut":      "EN_MISSION",
		"id":          "ignored",
	})
	assert.NoError(t, err)

	vehicles, err := store.GetVehicles()
	assert.NoError(t, err)
	assert.Equal(t, "veh-001", vehicles[0]["id"])
	assert.Equal(t, float64(40000), vehicles[0]["kilometrage"])
	assert.Equal(t, "EN_MISSION", vehicles[0]["statut"])
	// fields absent from the partial keep their stored value
	assert.Equal(t, "Renault", vehicles[0]["marque"])
}

func TestStore_UpdateVehicleNotFound(t *testing.T) {
	store := localstore.New(localstore.NewMemoryBackend())

	err := store.UpdateVehicle("veh-999", localstore.Record{"statut": "EN_MISSION"})
	var notFound localstore.ErrNotFound
	assert.ErrorAs(t, err, &notFound)
	assert.Equal(t, "veh-999", notFound.ID)
}

func TestStore_DeleteVehicle(t *testing.T) {
	store := localstore.New(localstore.NewMemoryBackend())

	assert.NoError(t, store.DeleteVehicle("veh-001"))

	vehicles, err := store.GetVehicles()
	assert.NoError(t, err)
	assert.Len(t, vehicles, 1)
	assert.Equal(t, "veh-002", vehicles[0]["id"])

	err = store.DeleteVehicle("veh-001")
	var notFound localstore.ErrNotFound
	assert.ErrorAs(t, err, &notFound)
}

func TestStore_EmptyEntityTypes(t *testing.T) {
	store := localstore.New(localstore.NewMemoryBackend())

	voyages, err := store.GetVoyages()
	assert.NoError(t, err)
	assert.Empty(t, voyages)

	assert.NoError(t, store.AddVoyage(localstore.Record{"id": "voy-001", "villeDepart": "Libreville"}))
	voyages, err = store.GetVoyages()
	assert.NoError(t, err)
	assert.Len(t, voyages, 1)
}

func TestStore_ExportImportRoundTrip(t *testing.T) {
	source := localstore.New(localstore.NewMemoryBackend())
	assert.NoError(t, source.AddVehicle(localstore.Record{"id": "veh-003", "marque": "Toyota"}))
	assert.NoError(t, source.AddViolation(localstore.Record{"id": "inf-001", "montant": float64(90)}))

	dump, err := source.Export()
	assert.NoError(t, err)

	dest := localstore.New(localstore.NewMemoryBackend())
	assert.NoError(t, dest.Import(dump))

	vehicles, err := dest.GetVehicles()
	assert.NoError(t, err)
	assert.Len(t, vehicles, 3)

	violations, err := dest.GetViolations()
	assert.NoError(t, err)
	assert.Len(t, violations, 1)
	assert.Equal(t, "inf-001", violations[0]["id"])
}

func TestFileBackend_RoundTrip(t *testing.T) {
	backend, err := localstore.NewFileBackend(t.TempDir())
	assert.NoError(t, err)

	store := localstore.New(backend)
	assert.NoError(t, store.AddVehicle(localstore.Record{"id": "veh-003", "marque": "Toyota"}))

	// a second store over the same directory sees the persisted state
	reopened := localstore.New(backend)
	vehicles, err := reopened.GetVehicles()
	assert.NoError(t, err)
	assert.Len(t, vehicles, 3)
}
