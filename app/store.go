package app

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/iov-one/jointbank"
	"github.com/iov-one/jointbank/errors"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/log"
)

// StoreApp implements the storage side of an ABCI application: state
// handshake, genesis loading, queries and commits. Embed it to add
// transaction processing.
//
// ABCI calls that carry no user input (Info, InitChain, Commit) panic on
// failure. Tendermint offers no way to report those errors and the node must
// stop.
type StoreApp struct {
	name        string
	logger      log.Logger
	store       *CommitStore
	initializer jointbank.Initializer
	queryRouter jointbank.QueryRouter

	// chainID is empty until the genesis is loaded.
	chainID string

	// baseContext is valid for the lifetime of the app, blockContext for
	// the current block only.
	baseContext  jointbank.Context
	blockContext jointbank.Context
}

// NewStoreApp loads the latest state of store and returns an app ready to
// serve. It panics when the state cannot be read.
func NewStoreApp(name string, store jointbank.CommitKVStore,
	queryRouter jointbank.QueryRouter, baseContext jointbank.Context) *StoreApp {
	s := &StoreApp{
		name:        name,
		store:       NewCommitStore(store),
		queryRouter: queryRouter,
		baseContext: baseContext,
	}
	s.WithLogger(log.NewNopLogger())

	if chainID := mustLoadChainID(s.DeliverStore()); chainID != "" {
		s.setChainID(chainID)
	}
	info, err := s.store.CommitInfo()
	if err != nil {
		panic(err)
	}
	s.blockContext = jointbank.WithHeight(s.baseContext, info.Version)
	return s
}

// GetChainID returns the chain id loaded from the genesis, if any.
func (s *StoreApp) GetChainID() string {
	return s.chainID
}

// WithInit sets the initializer used by InitChain.
func (s *StoreApp) WithInit(init jointbank.Initializer) *StoreApp {
	s.initializer = init
	return s
}

// WithLogger sets the logger of the app and of its base context.
func (s *StoreApp) WithLogger(logger log.Logger) *StoreApp {
	s.logger = logger
	s.baseContext = jointbank.WithLogger(s.baseContext, logger)
	return s
}

func (s *StoreApp) Logger() log.Logger {
	return s.logger
}

// BlockContext returns the context of the block being processed.
func (s *StoreApp) BlockContext() jointbank.Context {
	return s.blockContext
}

// DeliverStore returns the cache that DeliverTx writes to.
func (s *StoreApp) DeliverStore() jointbank.CacheableKVStore {
	return s.store.DeliverStore()
}

// CheckStore returns the cache that CheckTx writes to.
func (s *StoreApp) CheckStore() jointbank.CacheableKVStore {
	return s.store.CheckStore()
}

func (s *StoreApp) setChainID(chainID string) {
	s.chainID = chainID
	s.baseContext = jointbank.WithChainID(s.baseContext, chainID)
}

// initGenesis stores the chain id and runs init against the app state. It
// fails if a genesis was already loaded. The chain id is kept even when
// init fails.
func (s *StoreApp) initGenesis(chainID string, state jointbank.Options, init jointbank.Initializer) error {
	if s.chainID != "" {
		return errors.Wrapf(errors.ErrState, "appState previously loaded for chain: %s", s.chainID)
	}
	if err := saveChainID(s.DeliverStore(), chainID); err != nil {
		return err
	}
	s.setChainID(chainID)
	if init == nil {
		return nil
	}
	return init.FromGenesis(state, s.DeliverStore())
}

// LoadGenesis initializes the state from a genesis file, the way InitChain
// does for a running node.
func (s *StoreApp) LoadGenesis(filePath string, init jointbank.Initializer) error {
	gen, err := loadGenesis(filePath)
	if err != nil {
		return err
	}
	return s.initGenesis(gen.ChainID, gen.AppState, init)
}

// Info returns the name, version and last committed height and hash.
func (s *StoreApp) Info(req abci.RequestInfo) abci.ResponseInfo {
	info, err := s.store.CommitInfo()
	if err != nil {
		panic(err)
	}
	s.logger.Info("Info synced", "height", info.Version, "hash", fmt.Sprintf("%X", info.Hash))
	return abci.ResponseInfo{
		Data:             s.name,
		Version:          jointbank.Version(),
		LastBlockHeight:  info.Version,
		LastBlockAppHash: info.Hash,
	}
}

func (s *StoreApp) SetOption(abci.RequestSetOption) abci.ResponseSetOption {
	return abci.ResponseSetOption{Log: "Not Implemented"}
}

// InitChain loads the genesis app state. It runs only on the first start of
// a chain.
func (s *StoreApp) InitChain(req abci.RequestInitChain) abci.ResponseInitChain {
	if len(req.AppStateBytes) == 0 {
		panic(errors.Wrap(errors.ErrEmpty, "app_state not set in genesis.json, please initialize application before launching the blockchain"))
	}
	var state jointbank.Options
	if err := json.Unmarshal(req.AppStateBytes, &state); err != nil {
		panic(errors.Wrap(errors.ErrInput, err.Error()))
	}
	if err := s.initGenesis(req.ChainId, state, s.initializer); err != nil {
		panic(err)
	}
	return abci.ResponseInitChain{}
}

// BeginBlock sets up the context for the transactions of the block.
func (s *StoreApp) BeginBlock(req abci.RequestBeginBlock) abci.ResponseBeginBlock {
	ctx := jointbank.WithHeader(s.baseContext, req.Header)
	s.blockContext = jointbank.WithHeight(ctx, req.Header.GetHeight())
	return abci.ResponseBeginBlock{}
}

// EndBlock reports no validator changes, the set is fixed at genesis.
func (s *StoreApp) EndBlock(abci.RequestEndBlock) abci.ResponseEndBlock {
	return abci.ResponseEndBlock{}
}

// Commit persists the deliver state and returns the new app hash.
func (s *StoreApp) Commit() abci.ResponseCommit {
	id, err := s.store.Commit()
	if err != nil {
		panic(err)
	}
	s.logger.Debug("Commit synced", "height", id.Version, "hash", fmt.Sprintf("%X", id.Hash))
	return abci.ResponseCommit{Data: id.Hash}
}

// Query reads the last committed state. Path selects a registered query
// handler and may end with "?<mod>" to pick a modifier, for example
// "/bankaccounts/owner?prefix". Key and Value of the response are
// serialized ResultSets of equal length.
func (s *StoreApp) Query(req abci.RequestQuery) abci.ResponseQuery {
	height, models, err := s.query(req.Path, req.Data)
	if err != nil {
		return jointbank.QueryError(err, false)
	}
	keys, err := ResultsFromKeys(models).Marshal()
	if err != nil {
		return jointbank.QueryError(err, false)
	}
	values, err := ResultsFromValues(models).Marshal()
	if err != nil {
		return jointbank.QueryError(err, false)
	}
	return abci.ResponseQuery{Height: height, Key: keys, Value: values}
}

func (s *StoreApp) query(fullPath string, data []byte) (int64, []jointbank.Model, error) {
	path, mod := splitPath(fullPath)
	h := s.queryRouter.Handler(path)
	if h == nil {
		return 0, nil, errors.Wrapf(errors.ErrNotFound, "unexpected query path: %v", fullPath)
	}
	info, err := s.store.CommitInfo()
	if err != nil {
		return 0, nil, err
	}
	db := s.store.CommittedStore()
	defer db.Discard()
	models, err := h.Query(db, mod, data)
	return info.Version, models, err
}

// splitPath separates the query modifier following "?" from the path.
func splitPath(path string) (string, string) {
	if n := strings.IndexByte(path, '?'); n >= 0 {
		return path[:n], path[n+1:]
	}
	return path, ""
}
