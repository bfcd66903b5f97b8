package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"golang.org/x/time/rate"

	"CivilBot/internal/assistant"
	"CivilBot/internal/auth"
	"CivilBot/internal/calc/batch"
	"CivilBot/internal/calc/beam"
	"CivilBot/internal/calc/boq"
	"CivilBot/internal/calc/column"
	"CivilBot/internal/calc/diagram"
	"CivilBot/internal/calc/importer"
	"CivilBot/internal/calc/loads"
	"CivilBot/internal/calc/materials"
	"CivilBot/internal/calc/mix"
	"CivilBot/internal/calc/rebar"
	"CivilBot/internal/calc/report"
	"CivilBot/internal/calc/respond"
	"CivilBot/internal/calc/schedule"
	"CivilBot/internal/calc/slab"
	"CivilBot/internal/calc/units"
	"CivilBot/internal/config"
	"CivilBot/internal/history"
	"CivilBot/internal/repo"
	"CivilBot/internal/upload"
)

var wg sync.WaitGroup

func CORS(mux *mux.Router) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		mux.ServeHTTP(w, r)
	})
}

func HandleList(mux *mux.Router, cfg config.Config, store history.Store) {
	guard := upload.Guard{MaxBytes: cfg.UploadMaxBytes}
	defaults := boq.DefaultOptions()

	limiter := auth.NewIPRateLimiter(rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst)
	api := mux.PathPrefix("/api").Subrouter()
	api.Use(limiter.LimitMiddleware)

	beamH := &beam.Handler{Policy: cfg.Beam}
	batchH := &batch.Handler{Policy: cfg.Beam}
	diagramH := &diagram.Handler{Policy: cfg.Beam}
	reportH := &report.Handler{Policy: cfg.Beam, Defaults: defaults}
	boqH := &boq.Handler{Defaults: defaults}
	importH := &importer.Handler{Upload: guard, Defaults: defaults}
	mixH := &mix.Handler{}
	rebarH := &rebar.Handler{}
	unitsH := &units.Handler{}
	scheduleH := &schedule.Handler{}
	loadsH := &loads.Handler{}
	slabH := &slab.Handler{}
	columnH := &column.Handler{}

	api.HandleFunc("/tools/beam/calc", beamH.Calc).Methods("POST")
	api.HandleFunc("/tools/beam/batch", batchH.Beam).Methods("POST")
	api.HandleFunc("/tools/beam/diagram", diagramH.Beam).Methods("POST")
	api.HandleFunc("/tools/beam/report", reportH.Beam).Methods("POST")
	api.HandleFunc("/tools/boq/estimate", boqH.Estimate).Methods("POST")
	api.HandleFunc("/tools/boq/room", boqH.Room).Methods("POST")
	api.HandleFunc("/tools/boq/area", boqH.Area).Methods("POST")
	api.HandleFunc("/tools/boq/export", reportH.BOQ).Methods("POST")
	api.HandleFunc("/tools/boq/import", importH.BOQ).Methods("POST")
	api.HandleFunc("/tools/boq/import/template", importH.Template).Methods("GET")
	api.HandleFunc("/tools/mix/calc", mixH.Calc).Methods("POST")
	api.HandleFunc("/tools/rebar/calc", rebarH.Calc).Methods("POST")
	api.HandleFunc("/tools/units/convert", unitsH.Convert).Methods("POST")
	api.HandleFunc("/tools/schedule/calc", scheduleH.Calc).Methods("POST")
	api.HandleFunc("/tools/loads/calc", loadsH.Calc).Methods("POST")
	api.HandleFunc("/tools/slab/calc", slabH.Calc).Methods("POST")
	api.HandleFunc("/tools/column/calc", columnH.Calc).Methods("POST")

	api.HandleFunc("/grades", func(w http.ResponseWriter, r *http.Request) {
		respond.JSON(w, http.StatusOK, map[string][]string{
			"concrete": materials.Grades(materials.KindConcrete),
			"steel":    materials.Grades(materials.KindSteel),
		})
	}).Methods("GET")

	llm := assistant.NewClient(cfg.LLMBaseURL, cfg.LLMAPIKey)
	bot := assistant.New(llm, store, assistant.Config{Model: cfg.LLMModel})
	assistantH := &assistant.Handler{Assistant: bot, Store: store, Upload: guard, HistoryLimit: cfg.HistoryLimit}
	conversations := &auth.Conversations{Key: cfg.TokenKey, Secure: cfg.TLS()}

	withConversation := func(h http.HandlerFunc) http.Handler { return conversations.Middleware(h) }
	api.Handle("/chat", withConversation(assistantH.Chat)).Methods("POST")
	api.Handle("/chat/history", withConversation(assistantH.History)).Methods("GET")
	api.Handle("/chat/history", withConversation(assistantH.ClearHistory)).Methods("DELETE")
	api.HandleFunc("/safety", assistantH.Safety).Methods("POST")
	api.HandleFunc("/tools/schedule/insights", assistantH.Schedule).Methods("POST")

	mux.PathPrefix("/").Handler(http.FileServer(http.Dir("./static")))
}

// openStore picks Postgres when a database is configured and the in-memory
// store otherwise. The returned func releases the store.
func openStore(ctx context.Context, cfg config.Config) (history.Store, func(), error) {
	if cfg.Database == "" {
		log.Println("Chat history kept in memory")
		return history.NewMemoryStore(cfg.HistoryLimit), func() {}, nil
	}
	db, err := repo.InitDB(cfg.Database)
	if err != nil {
		return nil, nil, err
	}
	r := repo.NewPostgresHistoryRepository(db, cfg.HistoryLimit)
	if err := r.Migrate(ctx); err != nil {
		db.Close()
		return nil, nil, err
	}
	log.Println("Chat history kept in Postgres")
	return r, func() { db.Close() }, nil
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	store, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		log.Fatalf("history store: %v", err)
	}
	defer closeStore()

	mux := mux.NewRouter()
	HandleList(mux, cfg, store)

	server := &http.Server{
		Addr:    cfg.Addr,
		Handler: CORS(mux),
	}

	log.Printf("Starting server on %s", cfg.Addr)
	wg.Add(1)
	go func() {
		defer wg.Done()
		var err error
		if cfg.TLS() {
			err = server.ListenAndServeTLS(cfg.TLSCert, cfg.TLSKey)
		} else {
			err = server.ListenAndServe()
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("Server error: %v", err)
			cancel()
		}
	}()

	<-ctx.Done()
	log.Println("Shutdown signal received, closing active connections")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server shutdown failed: %v", err)
	}
	log.Println("Server stopped")

	wg.Wait()
}
