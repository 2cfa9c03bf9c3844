package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/paulmach/orb"
)

type BuildMapRequest struct {
	Width           int             `json:"width"`
	Height          int             `json:"height"`
	ClearanceRadius *float64        `json:"clearanceRadius,omitempty"`
	Threshold       uint8           `json:"threshold,omitempty"`
	Intensity       [][]int         `json:"intensity,omitempty"` // Optional raw pixel grid, 0-255
	Obstacles       json.RawMessage `json:"obstacles,omitempty"` // Optional GeoJSON FeatureCollection
	Force           bool            `json:"force,omitempty"`     // Set to true to replace the active map
}

type PlanRequest struct {
	Start      Point  `json:"start"`
	Goal       Point  `json:"goal"`
	Params     Params `json:"params"`
	SaveToFile bool   `json:"saveToFile,omitempty"`
}

type PlanResponse struct {
	PlanID     string  `json:"planId"`
	Success    bool    `json:"success"`
	State      string  `json:"state"`
	Path       []Point `json:"path"`
	Validated  bool    `json:"validated"`
	Iterations int     `json:"iterations"`
	Nodes      int     `json:"nodes"`
	Stats      Stats   `json:"stats"`
	Length     float64 `json:"length"`
	ElapsedMs  int64   `json:"elapsedMs"`
	Message    string  `json:"message,omitempty"`
}

// server holds the active occupancy map and the last grown tree
type server struct {
	cfg *Config

	mu        sync.RWMutex
	occupancy *OccupancyMap
	mapID     string
	lastTree  *Tree
	lastPath  Path
	lastPlan  string
}

func newServer(cfg *Config) *server {
	return &server{cfg: cfg}
}

// corsMiddleware adds CORS headers to allow frontend requests
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		// Handle preflight
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *server) routes() *mux.Router {
	r := mux.NewRouter()
	r.Use(corsMiddleware)

	r.HandleFunc("/buildMap", s.buildMapHandler).Methods(http.MethodPost, http.MethodOptions)
	r.HandleFunc("/plan", s.planHandler).Methods(http.MethodPost, http.MethodOptions)
	r.HandleFunc("/getTreeLines", s.getTreeLinesHandler).Methods(http.MethodGet, http.MethodOptions)
	r.HandleFunc("/getTreeGeoJSON", s.getTreeGeoJSONHandler).Methods(http.MethodGet, http.MethodOptions)
	r.HandleFunc("/health", s.healthHandler).Methods(http.MethodGet, http.MethodOptions)
	return r
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// buildOccupancy rasterises optional obstacle polygons onto an intensity grid and inflates it
func buildOccupancy(b Bounds, intensity [][]int, polygons []orb.Polygon, opts InflateOptions) (*OccupancyMap, error) {
	var grid [][]uint8
	if len(intensity) > 0 {
		grid = make([][]uint8, len(intensity))
		for y, row := range intensity {
			grid[y] = make([]uint8, len(row))
			for x, v := range row {
				grid[y][x] = uint8(min(max(v, 0), 255))
			}
		}
	} else {
		if b.Width <= 0 || b.Height <= 0 {
			return nil, ErrEmptyGrid
		}
		grid = NewIntensityGrid(b)
	}

	RasterizeObstacles(grid, polygons, opts.Workers)
	return InflateObstacles(grid, opts)
}

// installMap makes m the active map and drops the tree grown on the previous one
func (s *server) installMap(m *OccupancyMap) string {
	id := uuid.New().String()
	s.mu.Lock()
	s.occupancy = m
	s.mapID = id
	s.lastTree = nil
	s.lastPath = Path{}
	s.mu.Unlock()
	return id
}

// POST /buildMap - Build the inflated occupancy map
func (s *server) buildMapHandler(w http.ResponseWriter, r *http.Request) {
	log.Println("========================================")
	log.Println("🗺️  Build map request received")

	var req BuildMapRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("❌ Invalid request body: %v\n", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	s.mu.RLock()
	alreadyExists := s.occupancy != nil
	s.mu.RUnlock()

	if alreadyExists && !req.Force {
		log.Println("⚠️  Map already exists")
		log.Println("========================================")
		writeJSON(w, http.StatusConflict, map[string]interface{}{
			"success": false,
			"error":   "map already exists",
			"message": "A map is already built. Set 'force: true' to rebuild.",
		})
		return
	}

	opts := s.cfg.InflateOptions()
	if req.ClearanceRadius != nil {
		opts.Radius = *req.ClearanceRadius
	}
	if req.Threshold != 0 {
		opts.Threshold = req.Threshold
	}

	var polygons []orb.Polygon
	if len(req.Obstacles) > 0 {
		var err error
		polygons, err = ParseObstacles(req.Obstacles)
		if err != nil {
			log.Printf("❌ Invalid obstacles: %v\n", err)
			http.Error(w, "Invalid obstacles GeoJSON", http.StatusBadRequest)
			return
		}
	}

	log.Printf("   Size: %dx%d, clearance radius: %.1f\n", req.Width, req.Height, opts.Radius)
	log.Printf("   Obstacle polygons: %d\n", len(polygons))

	start := time.Now()
	m, err := buildOccupancy(Bounds{Width: req.Width, Height: req.Height}, req.Intensity, polygons, opts)
	if err != nil {
		log.Printf("❌ Failed to build map: %v\n", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	id := s.installMap(m)

	log.Printf("✅ Map %s built in %.3f seconds\n", id, time.Since(start).Seconds())
	log.Println("========================================")

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":   true,
		"mapId":     id,
		"width":     m.Width(),
		"height":    m.Height(),
		"freeCells": m.FreeCells(),
	})
}

// POST /plan - Grow an RRT between start and goal on the active map
func (s *server) planHandler(w http.ResponseWriter, r *http.Request) {
	log.Println("========================================")
	log.Println("📍 Plan request received")

	req := PlanRequest{Params: s.cfg.PlannerParams()}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("❌ Invalid request body: %v\n", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	s.mu.RLock()
	m := s.occupancy
	s.mu.RUnlock()

	if m == nil {
		log.Println("❌ Map not available")
		http.Error(w, "Map not built. Call /buildMap first", http.StatusBadRequest)
		log.Println("========================================")
		return
	}

	planner, err := NewPlanner(m, req.Params)
	if err != nil {
		log.Printf("❌ %v\n", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	res, err := planner.Plan(r.Context(), req.Start, req.Goal)
	switch {
	case errors.Is(err, ErrOutOfBounds), errors.Is(err, ErrStartBlocked), errors.Is(err, ErrGoalBlocked):
		log.Printf("❌ %v\n", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	case err != nil:
		log.Printf("❌ Planning failed: %v\n", err)
		http.Error(w, "Planning failed", http.StatusInternalServerError)
		return
	}

	planID := uuid.New().String()
	s.mu.Lock()
	s.lastTree = res.Tree
	s.lastPath = res.Path
	s.lastPlan = planID
	s.mu.Unlock()

	if req.SaveToFile && s.cfg.TreeFile != "" {
		if err := SaveTree(res.Tree, s.cfg.TreeFile); err != nil {
			log.Printf("⚠️  Failed to save tree: %v\n", err)
		}
	}

	response := PlanResponse{
		PlanID:     planID,
		Success:    res.Success,
		State:      res.State.String(),
		Path:       res.Path.Waypoints,
		Validated:  res.Path.Validated,
		Iterations: res.Iterations,
		Nodes:      res.Nodes,
		Stats:      res.Stats,
		Length:     res.Path.Length(),
		ElapsedMs:  res.Elapsed.Milliseconds(),
	}
	if !res.Success {
		response.Message = "No path found within the iteration and node budget; path is best effort and unvalidated"
	}

	writeJSON(w, http.StatusOK, response)
	log.Println("========================================")
}

// GET /getTreeLines - Get tree edges as line strings for visualization
func (s *server) getTreeLinesHandler(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	tree := s.lastTree
	planID := s.lastPlan
	s.mu.RUnlock()

	if tree == nil {
		http.Error(w, "No tree grown yet. Call /plan first", http.StatusBadRequest)
		return
	}

	lines := tree.Segments()
	log.Printf("📊 Returning %d tree segments\n", len(lines))

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"planId":   planID,
		"lines":    lines,
		"numNodes": tree.Len(),
		"numEdges": len(lines),
	})
}

// GET /getTreeGeoJSON - Get tree, path, start and goal as a FeatureCollection
func (s *server) getTreeGeoJSONHandler(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	tree := s.lastTree
	path := s.lastPath
	s.mu.RUnlock()

	if tree == nil {
		http.Error(w, "No tree grown yet. Call /plan first", http.StatusBadRequest)
		return
	}

	data, err := TreeFeatureCollection(tree, path).MarshalJSON()
	if err != nil {
		http.Error(w, "Failed to encode GeoJSON", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/geo+json")
	w.Write(data)
}

// GET /health - Health check endpoint
func (s *server) healthHandler(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	hasMap := s.occupancy != nil
	mapID := s.mapID
	numNodes := 0
	if s.lastTree != nil {
		numNodes = s.lastTree.Len()
	}
	s.mu.RUnlock()

	status := "ready"
	if !hasMap {
		status = "waiting for map"
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":   status,
		"hasMap":   hasMap,
		"mapId":    mapID,
		"numNodes": numNodes,
	})
}

func main() {
	log.Println("========================================")
	log.Println("🚀 RRT Planner Server")
	log.Println("========================================")

	cfg, err := LoadConfig()
	if err != nil {
		log.Fatalf("❌ Failed to load config: %v", err)
	}
	s := newServer(cfg)

	if cfg.ObstacleFile != "" {
		polygons, err := LoadObstacles(cfg.ObstacleFile)
		if err != nil {
			log.Fatalf("❌ Failed to load obstacles: %v", err)
		}
		m, err := buildOccupancy(Bounds{Width: cfg.MapWidth, Height: cfg.MapHeight}, nil, polygons, cfg.InflateOptions())
		if err != nil {
			log.Fatalf("❌ Failed to build map: %v", err)
		}
		id := s.installMap(m)
		log.Printf("✅ Built map %s (%dx%d, %d free cells)\n", id, m.Width(), m.Height(), m.FreeCells())
	} else {
		log.Println("ℹ️  No obstacle file configured")
		log.Println("   Call /buildMap to create a map")
	}

	if tree, err := LoadTree(cfg.TreeFile); err == nil {
		s.mu.Lock()
		s.lastTree = tree
		s.lastPath = ExtractPath(tree)
		s.mu.Unlock()
		log.Printf("✅ Loaded previous tree: %d nodes, success=%v\n", tree.Len(), tree.Success())
	} else {
		log.Println("ℹ️  No previous tree found (this is normal on first run)")
	}
	log.Println("")

	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		log.Println("Shutting down server")
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		srv.Shutdown(shutdownCtx)
	}()

	log.Printf("Server starting on %s\n", addr)
	log.Println("")
	log.Println("Endpoints:")
	log.Println("  POST /buildMap        - Build the inflated occupancy map")
	log.Println("  POST /plan            - Grow an RRT between start and goal")
	log.Println("  GET  /getTreeLines    - Get tree edges for visualization")
	log.Println("  GET  /getTreeGeoJSON  - Get tree and path as GeoJSON")
	log.Println("  GET  /health          - Check server status")
	log.Println("========================================")

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal(err)
	}
}
