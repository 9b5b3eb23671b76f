package localstore

import "fmt"

// Record is one entity row as the frontend stores it: a JSON object with an
// "id" field. The shim does not impose a schema beyond the id; an old stored
// array silently keeps its old shape.
type Record = map[string]interface{}

// ErrNotFound reports an update or delete whose id matched no stored record
type ErrNotFound struct {
	Key string
	ID  string
}

func (e ErrNotFound) Error() string {
	return fmt.Sprintf("no record %q under %s", e.ID, e.Key)
}

func recordID(r Record) string {
	id, _ := r["id"].(string)
	return id
}

func (s *Store) getAll(key string, defaults []Record) ([]Record, error) {
	var records []Record
	if err := s.load(key, &records, defaults); err != nil {
		return nil, err
	}
	return records, nil
}

func (s *Store) add(key string, defaults []Record, record Record) error {
	records, err := s.getAll(key, defaults)
	if err != nil {
		return err
	}
	return s.save(key, append(records, record))
}

// update merges partial into the record matching id by linear scan, then
// rewrites the whole array
func (s *Store) update(key string, defaults []Record, id string, partial Record) error {
	records, err := s.getAll(key, defaults)
	if err != nil {
		return err
	}
	for i, r := range records {
		if recordID(r) != id {
			continue
		}
		for k, v := range partial {
			if k == "id" {
				continue
			}
			records[i][k] = v
		}
		return s.save(key, records)
	}
	return ErrNotFound{Key: key, ID: id}
}

func (s *Store) delete(key string, defaults []Record, id string) error {
	records, err := s.getAll(key, defaults)
	if err != nil {
		return err
	}
	kept := records[:0]
	found := false
	for _, r := range records {
		if recordID(r) == id {
			found = true
			continue
		}
		kept = append(kept, r)
	}
	if !found {
		return ErrNotFound{Key: key, ID: id}
	}
	return s.save(key, kept)
}

// GetVehicles returns the stored vehicles, seeding the defaults on first read
func (s *Store) GetVehicles() ([]Record, error) {
	return s.getAll(KeyVehicles, defaultVehicles())
}

// AddVehicle appends a vehicle
func (s *Store) AddVehicle(record Record) error {
	return s.add(KeyVehicles, defaultVehicles(), record)
}

// UpdateVehicle merges partial into the vehicle with the given id
func (s *Store) UpdateVehicle(id string, partial Record) error {
	return s.update(KeyVehicles, defaultVehicles(), id, partial)
}

// DeleteVehicle removes the vehicle with the given id
func (s *Store) DeleteVehicle(id string) error {
	return s.delete(KeyVehicles, defaultVehicles(), id)
}

// GetFuelRecords returns the stored fuel records
func (s *Store) GetFuelRecords() ([]Record, error) {
	return s.getAll(KeyFuelRecords, nil)
}

// AddFuelRecord appends a fuel record
func (s *Store) AddFuelRecord(record Record) error {
	return s.add(KeyFuelRecords, nil, record)
}

// UpdateFuelRecord merges partial into the fuel record with the given id
func (s *Store) UpdateFuelRecord(id string, partial Record) error {
	return s.update(KeyFuelRecords, nil, id, partial)
}

// DeleteFuelRecord removes the fuel record with the given id
func (s *Store) DeleteFuelRecord(id string) error {
	return s.delete(KeyFuelRecords, nil, id)
}

// GetMaintenanceRecords returns the stored maintenance records
func (s *Store) GetMaintenanceRecords() ([]Record, error) {
	return s.getAll(KeyMaintenance, nil)
}

// AddMaintenanceRecord appends a maintenance record
func (s *Store) AddMaintenanceRecord(record Record) error {
	return s.add(KeyMaintenance, nil, record)
}

// UpdateMaintenanceRecord merges partial into the maintenance record with the given id
func (s *Store) UpdateMaintenanceRecord(id string, partial Record) error {
	return s.update(KeyMaintenance, nil, id, partial)
}

// DeleteMaintenanceRecord removes the maintenance record with the given id
func (s *Store) DeleteMaintenanceRecord(id string) error {
	return s.delete(KeyMaintenance, nil, id)
}

// GetViolations returns the stored violations
func (s *Store) GetViolations() ([]Record, error) {
	return s.getAll(KeyViolations, nil)
}

// AddViolation appends a violation
func (s *Store) AddViolation(record Record) error {
	return s.add(KeyViolations, nil, record)
}

// UpdateViolation merges partial into the violation with the given id
func (s *Store) UpdateViolation(id string, partial Record) error {
	return s.update(KeyViolations, nil, id, partial)
}

// DeleteViolation removes the violation with the given id
func (s *Store) DeleteViolation(id string) error {
	return s.delete(KeyViolations, nil, id)
}

// GetDocuments returns the stored documents
func (s *Store) GetDocuments() ([]Record, error) {
	return s.getAll(KeyDocuments, nil)
}

// AddDocument appends a document
func (s *Store) AddDocument(record Record) error {
	return s.add(KeyDocuments, nil, record)
}

// UpdateDocument merges partial into the document with the given id
func (s *Store) UpdateDocument(id string, partial Record) error {
	return s.update(KeyDocuments, nil, id, partial)
}

// DeleteDocument removes the document with the given id
func (s *Store) DeleteDocument(id string) error {
	return s.delete(KeyDocuments, nil, id)
}

// GetVoyages returns the stored voyages
func (s *Store) GetVoyages() ([]Record, error) {
	return s.getAll(KeyVoyages, nil)
}

// AddVoyage appends a voyage
func (s *Store) AddVoyage(record Record) error {
	return s.add(KeyVoyages, nil, record)
}

// UpdateVoyage merges partial into the voyage with the given id
func (s *Store) UpdateVoyage(id string, partial Record) error {
	return s.update(KeyVoyages, nil, id, partial)
}

// DeleteVoyage removes the voyage with the given id
func (s *Store) DeleteVoyage(id string) error {
	return s.delete(KeyVoyages, nil, id)
}

// GetReservations returns the stored reservations
func (s *Store) GetReservations() ([]Record, error) {
	return s.getAll(KeyReservations, nil)
}

// AddReservation appends a reservation
func (s *Store) AddReservation(record Record) error {
	return s.add(KeyReservations, nil, record)
}

// UpdateReservation merges partial into the reservation with the given id
func (s *Store) UpdateReservation(id string, partial Record) error {
	return s.update(KeyReservations, nil, id, partial)
}

// DeleteReservation removes the reservation with the given id
func (s *Store) DeleteReservation(id string) error {
	return s.delete(KeyReservations, nil, id)
}
