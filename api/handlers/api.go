package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/mux"
	"github.com/stripe/stripe-go/v82"
	"go.uber.org/zap"

	"github.com/gestionparc/fleet-api/api"
	"github.com/gestionparc/fleet-api/api/scheduler"
	"github.com/gestionparc/fleet-api/config"
	"github.com/gestionparc/fleet-api/databases"
	"github.com/gestionparc/fleet-api/models"
)

// App stores the router and db connection, so it can be reused
type App struct {
	Router   *mux.Router
	Config   config.Config
	dbHelper databases.DatabaseHelper
}

// New creates a new mux router and all the routes
func (a *App) New() *mux.Router {
	userDB := databases.NewUserDatabase(a.dbHelper)
	auth := api.Auth{DB: userDB, Secret: []byte(a.Config.JWTSecret)}

	ah := Auth{DB: userDB, Config: a.Config}
	u := User{DB: userDB}
	v := Vehicle{DB: databases.NewVehicleDatabase(a.dbHelper)}
	f := Fuel{DB: databases.NewFuelDatabase(a.dbHelper), VDB: databases.NewVehicleDatabase(a.dbHelper)}
	m := Maintenance{DB: databases.NewMaintenanceDatabase(a.dbHelper)}
	vio := Violation{DB: databases.NewViolationDatabase(a.dbHelper), Config: a.Config}
	g := GPS{DB: databases.NewGPSDatabase(a.dbHelper), Hub: NewLiveHub()}
	d := Document{DB: databases.NewDocumentDatabase(a.dbHelper)}
	rep := Report{
		VDB:   databases.NewVehicleDatabase(a.dbHelper),
		FDB:   databases.NewFuelDatabase(a.dbHelper),
		VioDB: databases.NewViolationDatabase(a.dbHelper),
		DDB:   databases.NewDocumentDatabase(a.dbHelper),
		MDB:   databases.NewMaintenanceDatabase(a.dbHelper),
	}
	voy := Voyage{DB: databases.NewVoyageDatabase(a.dbHelper)}
	res := Reservation{DB: databases.NewReservationDatabase(a.dbHelper), VoyDB: databases.NewVoyageDatabase(a.dbHelper)}

	r := mux.NewRouter()
	r.Use(api.LoggingMiddleware)

	// healthchex
	r.HandleFunc("/health", healthCheckHandler)

	// live tracking streams indefinitely, so it is registered outside the
	// request timeout below
	r.Handle("/api/gps/live", http.HandlerFunc(g.LiveHandler)).Methods("GET")

	apiCreate := r.PathPrefix("/api").Subrouter()
	apiCreate.Use(api.TimeoutMiddleware(30 * time.Second))

	gestion := []models.Role{models.RoleAdmin, models.RoleGestionnaire}

	// public auth routes
	apiCreate.Handle("/auth/register", http.HandlerFunc(ah.RegisterHandler)).Methods("POST")
	apiCreate.Handle("/auth/login", http.HandlerFunc(ah.LoginHandler)).Methods("POST")
	apiCreate.Handle("/auth/forgot", http.HandlerFunc(ah.ForgotPasswordHandler)).Methods("POST")
	apiCreate.Handle("/auth/reset", http.HandlerFunc(ah.ResetPasswordHandler)).Methods("POST")

	// authenticated profile routes
	apiCreate.Handle("/auth/me", auth.Middleware(http.HandlerFunc(ah.MeHandler))).Methods("GET")
	apiCreate.Handle("/auth/profile", auth.Middleware(http.HandlerFunc(ah.UpdateProfileHandler))).Methods("PUT")
	apiCreate.Handle("/auth/password", auth.Middleware(http.HandlerFunc(ah.UpdatePasswordHandler))).Methods("PUT")

	apiCreate.Handle("/users", secured(auth, u.UsersHandler, gestion...)).Methods("GET")
	apiCreate.Handle("/users", secured(auth, u.CreateUserHandler, models.RoleAdmin)).Methods("POST")
	apiCreate.Handle("/users/{user_id}", secured(auth, u.UserByIDHandler, gestion...)).Methods("GET")
	apiCreate.Handle("/users/{user_id}", secured(auth, u.UpdateUserHandler, models.RoleAdmin)).Methods("PUT")
	apiCreate.Handle("/users/{user_id}", secured(auth, u.DeleteUserHandler, models.RoleAdmin)).Methods("DELETE")

	apiCreate.Handle("/vehicles", secured(auth, v.VehiclesHandler)).Methods("GET")
	apiCreate.Handle("/vehicles", secured(auth, v.CreateVehicleHandler, gestion...)).Methods("POST")
	apiCreate.Handle("/vehicles/{vehicle_id}", secured(auth, v.VehicleByIDHandler)).Methods("GET")
	apiCreate.Handle("/vehicles/{vehicle_id}", secured(auth, v.UpdateVehicleHandler, gestion...)).Methods("PUT")
	apiCreate.Handle("/vehicles/{vehicle_id}", secured(auth, v.DeleteVehicleHandler, models.RoleAdmin)).Methods("DELETE")

	apiCreate.Handle("/fuel", secured(auth, f.FuelRecordsHandler)).Methods("GET")
	apiCreate.Handle("/fuel", secured(auth, f.CreateFuelRecordHandler, gestion...)).Methods("POST")
	apiCreate.Handle("/fuel/vehicle/{vehicle_id}", secured(auth, f.FuelRecordsByVehicleIDHandler)).Methods("GET")
	apiCreate.Handle("/fuel/{fuel_id}", secured(auth, f.FuelRecordByIDHandler)).Methods("GET")
	apiCreate.Handle("/fuel/{fuel_id}", secured(auth, f.UpdateFuelRecordHandler, gestion...)).Methods("PUT")
	apiCreate.Handle("/fuel/{fuel_id}", secured(auth, f.DeleteFuelRecordHandler, models.RoleAdmin)).Methods("DELETE")

	apiCreate.Handle("/maintenance", secured(auth, m.MaintenanceRecordsHandler)).Methods("GET")
	apiCreate.Handle("/maintenance", secured(auth, m.CreateMaintenanceRecordHandler, gestion...)).Methods("POST")
	apiCreate.Handle("/maintenance/vehicle/{vehicle_id}", secured(auth, m.MaintenanceRecordsByVehicleIDHandler)).Methods("GET")
	apiCreate.Handle("/maintenance/{maintenance_id}", secured(auth, m.MaintenanceRecordByIDHandler)).Methods("GET")
	apiCreate.Handle("/maintenance/{maintenance_id}", secured(auth, m.UpdateMaintenanceRecordHandler, models.RoleAdmin, models.RoleGestionnaire, models.RoleMecanicien)).Methods("PUT")
	apiCreate.Handle("/maintenance/{maintenance_id}", secured(auth, m.DeleteMaintenanceRecordHandler, models.RoleAdmin)).Methods("DELETE")

	apiCreate.Handle("/violations", secured(auth, vio.ViolationsHandler)).Methods("GET")
	apiCreate.Handle("/violations", secured(auth, vio.CreateViolationHandler, gestion...)).Methods("POST")
	apiCreate.Handle("/violations/vehicle/{vehicle_id}", secured(auth, vio.ViolationsByVehicleIDHandler)).Methods("GET")
	apiCreate.Handle("/violations/pay/confirm", secured(auth, vio.ConfirmPaymentHandler)).Methods("POST")
	apiCreate.Handle("/violations/{violation_id}", secured(auth, vio.ViolationByIDHandler)).Methods("GET")
	apiCreate.Handle("/violations/{violation_id}", secured(auth, vio.UpdateViolationHandler, gestion...)).Methods("PUT")
	apiCreate.Handle("/violations/{violation_id}", secured(auth, vio.DeleteViolationHandler, models.RoleAdmin)).Methods("DELETE")
	apiCreate.Handle("/violations/{violation_id}/pay", secured(auth, vio.PayViolationHandler)).Methods("POST")

	apiCreate.Handle("/gps", secured(auth, g.CreateGPSRecordHandler)).Methods("POST")
	apiCreate.Handle("/gps", secured(auth, g.GPSRecordsHandler)).Methods("GET")
	apiCreate.Handle("/gps/vehicle/{vehicle_id}", secured(auth, g.GPSRecordsByVehicleIDHandler)).Methods("GET")
	apiCreate.Handle("/gps/vehicle/{vehicle_id}/latest", secured(auth, g.LatestPositionHandler)).Methods("GET")

	apiCreate.Handle("/documents", secured(auth, d.DocumentsHandler)).Methods("GET")
	apiCreate.Handle("/documents", secured(auth, d.CreateDocumentHandler, gestion...)).Methods("POST")
	apiCreate.Handle("/documents/upload-signature", secured(auth, d.UploadSignatureHandler, gestion...)).Methods("POST")
	apiCreate.Handle("/documents/vehicle/{vehicle_id}", secured(auth, d.DocumentsByVehicleIDHandler)).Methods("GET")
	apiCreate.Handle("/documents/{document_id}", secured(auth, d.DocumentByIDHandler)).Methods("GET")
	apiCreate.Handle("/documents/{document_id}", secured(auth, d.UpdateDocumentHandler, gestion...)).Methods("PUT")
	apiCreate.Handle("/documents/{document_id}", secured(auth, d.DeleteDocumentHandler, models.RoleAdmin)).Methods("DELETE")

	apiCreate.Handle("/reports/dashboard", secured(auth, rep.DashboardHandler)).Methods("GET")

	// TRAVEGAB travel module
	// voyage browsing is open to prospective passengers; a logged-in caller
	// still gets an identity attached for personalized output
	apiCreate.Handle("/voyages", auth.Optional(http.HandlerFunc(voy.VoyagesHandler))).Methods("GET")
	apiCreate.Handle("/voyages", secured(auth, voy.CreateVoyageHandler, gestion...)).Methods("POST")
	apiCreate.Handle("/voyages/{voyage_id}", auth.Optional(http.HandlerFunc(voy.VoyageByIDHandler))).Methods("GET")
	apiCreate.Handle("/voyages/{voyage_id}", secured(auth, voy.UpdateVoyageHandler, gestion...)).Methods("PUT")
	apiCreate.Handle("/voyages/{voyage_id}", secured(auth, voy.DeleteVoyageHandler, models.RoleAdmin)).Methods("DELETE")

	apiCreate.Handle("/reservations", secured(auth, res.ReservationsHandler)).Methods("GET")
	apiCreate.Handle("/reservations", secured(auth, res.CreateReservationHandler)).Methods("POST")
	apiCreate.Handle("/reservations/voyage/{voyage_id}", secured(auth, res.ReservationsByVoyageIDHandler)).Methods("GET")
	apiCreate.Handle("/reservations/{reservation_id}", secured(auth, res.ReservationByIDHandler)).Methods("GET")
	apiCreate.Handle("/reservations/{reservation_id}/cancel", secured(auth, res.CancelReservationHandler)).Methods("PUT")

	return r
}

// secured wraps a handler with the auth middleware and, when roles are
// given, the authorization guard
func secured(auth api.Auth, h http.HandlerFunc, roles ...models.Role) http.Handler {
	if len(roles) == 0 {
		return auth.Middleware(h)
	}
	return auth.Middleware(api.Authorize(roles...)(h))
}

// Initialize is invoked by main to connect with the database and create a router
func (a *App) Initialize() error {
	client, err := databases.NewClient(&a.Config)
	if err != nil {
		// if we fail to create a new database client, then kill the pod
		zap.S().With(err).Error("failed to create new client")
		return err
	}

	a.dbHelper = databases.NewDatabase(&a.Config, client)
	err = client.Connect()
	if err != nil {
		// if we fail to connect to the database, then kill the pod
		zap.S().With(err).Error("failed to connect to database")
		return err
	}
	zap.S().Info("fleet-api has connected to the database")

	stripe.Key = os.Getenv("STRIPE_SECRET_KEY")

	sched := scheduler.New(
		databases.NewDocumentDatabase(a.dbHelper),
		databases.NewMaintenanceDatabase(a.dbHelper),
	)
	sched.Start()

	// initialize api router
	a.initializeRoutes()
	return nil
}

func (a *App) initializeRoutes() {
	a.Router = a.New()
}

func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	b, _ := json.Marshal(models.HealthCheckResponse{
		Alive: true,
	})
	_, _ = io.WriteString(w, string(b))
}

// timestamp returns the RFC3339 time used for createdAt/updatedAt fields
func timestamp() string {
	return time.Now().UTC().Format(time.RFC3339)
}
