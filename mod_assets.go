package levelwalk

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/google/uuid"

	"github.com/gekko3d/levelwalk/camera"
)

type AssetId string

type AssetState int

const (
	AssetPending AssetState = iota
	AssetLoaded
	AssetFailed
)

func (s AssetState) String() string {
	switch s {
	case AssetPending:
		return "pending"
	case AssetLoaded:
		return "loaded"
	case AssetFailed:
		return "failed"
	}
	return fmt.Sprintf("AssetState(%d)", int(s))
}

// LevelAsset is a level as seen from the frame loop. Mesh stays nil until
// the level is Loaded; a Failed level keeps it nil for good.
type LevelAsset struct {
	Name     string
	State    AssetState
	Mesh     *LevelMesh
	Entities []Entity
	Err      error
	// Version bumps every time the asset changes state, so renderers can
	// tell a fresh mesh from one they already uploaded.
	Version uint
}

type levelResult struct {
	id       AssetId
	mesh     *LevelMesh
	entities []Entity
	err      error
}

// AssetServer fetches levels off the frame loop. Loads are fire-and-forget:
// LoadLevel returns at once and a PreUpdate system applies whatever finished
// since the previous frame. Nothing is retried.
type AssetServer struct {
	fetcher Fetcher
	logger  Logger
	timeout time.Duration

	pool    worker.DynamicWorkerPool
	taskID  int
	ctx     context.Context
	cancel  context.CancelFunc
	results chan levelResult
	wg      sync.WaitGroup

	levels map[AssetId]*LevelAsset
	spawns []AssetId
}

type AssetModule struct {
	Fetcher Fetcher
	// Timeout bounds each level load. Zero means no limit beyond the fetcher's.
	Timeout time.Duration
	// Workers caps concurrent loads; zero picks one less than the CPU count.
	Workers int
}

func (mod AssetModule) Install(app *App, cmd *Commands) {
	if mod.Fetcher == nil {
		panic("AssetModule: Fetcher is nil")
	}
	server := newAssetServer(mod.Fetcher, cmd.Logger(), mod.Timeout, mod.Workers)
	app.addResources(server)
	app.UseSystem(
		System(assetResultsSystem).
			InStage(PreUpdate),
	)
}

func newAssetServer(fetcher Fetcher, logger Logger, timeout time.Duration, workers int) *AssetServer {
	if workers <= 0 {
		workers = max(runtime.NumCPU()-1, 1)
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &AssetServer{
		fetcher: fetcher,
		logger:  logger,
		timeout: timeout,
		pool:    worker.NewDynamicWorkerPool(workers, 16, time.Second),
		ctx:     ctx,
		cancel:  cancel,
		results: make(chan levelResult, 16),
		levels:  make(map[AssetId]*LevelAsset),
	}
}

// LoadLevel starts fetching name.vertices, name.indices and, if present,
// name.entities.
func (server *AssetServer) LoadLevel(name string) AssetId {
	id := makeAssetId()
	server.levels[id] = &LevelAsset{Name: name, State: AssetPending}
	server.logger.Debugf("Loading level %q as %s", name, id)

	server.wg.Add(1)
	taskID := server.taskID
	server.taskID++
	server.pool.SubmitTask(worker.Task{
		ID: taskID,
		Do: func() (any, error) {
			defer server.wg.Done()
			res := server.fetchLevel(id, name)
			select {
			case server.results <- res:
			case <-server.ctx.Done():
			}
			return nil, nil
		},
	})
	return id
}

func (server *AssetServer) fetchLevel(id AssetId, name string) levelResult {
	ctx := server.ctx
	if server.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, server.timeout)
		defer cancel()
	}

	fail := func(part string, err error) levelResult {
		return levelResult{id: id, err: &NetworkError{Name: name + "." + part, Err: err}}
	}

	var verts levelVerticesFile
	if err := server.fetcher.FetchJSON(ctx, name+".vertices", &verts); err != nil {
		return fail("vertices", err)
	}
	var idx levelIndicesFile
	if err := server.fetcher.FetchJSON(ctx, name+".indices", &idx); err != nil {
		return fail("indices", err)
	}
	mesh, err := NewLevelMesh(verts.Vertices, idx.Indices)
	if err != nil {
		return fail("indices", err)
	}

	var ents levelEntitiesFile
	if err := server.fetcher.FetchJSON(ctx, name+".entities", &ents); err != nil && !errors.Is(err, ErrNotFound) {
		return fail("entities", err)
	}
	return levelResult{id: id, mesh: mesh, entities: ents.Entities}
}

// Level returns the current view of a load started with LoadLevel.
func (server *AssetServer) Level(id AssetId) (*LevelAsset, bool) {
	level, ok := server.levels[id]
	return level, ok
}

// Apply moves every finished load into its LevelAsset. It never blocks.
func (server *AssetServer) Apply() int {
	applied := 0
	for {
		select {
		case res := <-server.results:
			server.apply(res)
			applied++
		default:
			return applied
		}
	}
}

func (server *AssetServer) apply(res levelResult) {
	level, ok := server.levels[res.id]
	if !ok {
		return
	}
	level.Version++
	if res.err != nil {
		level.State = AssetFailed
		level.Err = res.err
		server.logger.Errorf("Level %q failed: %v", level.Name, res.err)
		return
	}

	level.State = AssetLoaded
	level.Mesh = res.mesh
	level.Entities = res.entities
	server.logger.Infof("Level %q loaded: %d vertices, %d triangles, %d entities",
		level.Name, res.mesh.VertexCount(), len(res.mesh.Indices)/3, len(res.entities))
	if _, ok := PlayerStart(res.entities); ok {
		server.spawns = append(server.spawns, res.id)
	}
}

// TakeSpawn pops the player start of the most recently loaded level that
// has one. Older pending spawns are dropped.
func (server *AssetServer) TakeSpawn(axis camera.AxisConvention) (camera.State, bool) {
	if len(server.spawns) == 0 {
		return camera.State{}, false
	}
	id := server.spawns[len(server.spawns)-1]
	server.spawns = server.spawns[:0]

	level := server.levels[id]
	start, _ := PlayerStart(level.Entities)
	state, err := SpawnState(start, axis)
	if err != nil {
		server.logger.Warnf("Level %q: ignoring player start: %v", level.Name, err)
		return camera.State{}, false
	}
	return state, true
}

// Close cancels loads in flight and waits for them to give up.
func (server *AssetServer) Close() {
	server.cancel()
	server.wg.Wait()
}

func assetResultsSystem(server *AssetServer) {
	server.Apply()
}

func makeAssetId() AssetId {
	return AssetId(uuid.NewString())
}
