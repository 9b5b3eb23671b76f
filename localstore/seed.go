package localstore

// defaultVehicles is the first-run seed the frontend ships with: two
// vehicles covering the two common fuel kinds.
func defaultVehicles() []Record {
	return []Record{
		{
			"id":              "veh-001",
			"immatriculation": "AB-123-CD",
			"marque":          "Renault",
			"modele":          "Clio",
			"annee":           2021,
			"typeVehicule":    "citadine",
			"carburant":       "essence",
			"kilometrage":     35200,
			"statut":          "DISPONIBLE",
		},
		{
			"id":              "veh-002",
			"immatriculation": "EF-456-GH",
			"marque":          "Peugeot",
			"modele":          "Partner",
			"annee":           2019,
			"typeVehicule":    "utilitaire",
			"carburant":       "diesel",
			"kilometrage":     87450,
			"statut":          "DISPONIBLE",
		},
	}
}
