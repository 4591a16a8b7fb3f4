package connection

import (
	"sync"

	"github.com/gagliardetto/solana-go/rpc"

	"glamgo/utils"
)

// Manager hands out rpc clients per configured endpoint, opening up to
// MaxReferrer clients for an endpoint before reusing them.
type Manager struct {
	mxState        *sync.Mutex
	configs        map[string]*Config
	rpcConnections map[string][]*rpc.Client
}

func CreateManager() *Manager {
	return &Manager{
		mxState:        new(sync.Mutex),
		configs:        make(map[string]*Config),
		rpcConnections: make(map[string][]*rpc.Client),
	}
}

// AddConfig registers config under id, or under its hash when id is empty,
// and returns the id used.
func (p *Manager) AddConfig(config Config, id ...string) string {
	defer p.mxState.Unlock()
	p.mxState.Lock()
	connectionId := config.Hash()
	if len(id) > 0 && len(id[0]) > 0 {
		connectionId = id[0]
	}
	if _, exists := p.configs[connectionId]; !exists {
		p.configs[connectionId] = &config
	}
	return connectionId
}

func (p *Manager) getConnectionId(id ...string) string {
	var connectionId string
	if len(id) > 0 && len(id[0]) > 0 {
		connectionId = id[0]
	}
	if _, exists := p.configs[connectionId]; !exists {
		connectionId = utils.RandomElement(utils.MapKeys(p.configs))
	}
	return connectionId
}

// GetRpc returns a client for id, or for any configured endpoint when id is
// unknown. Panics when nothing is configured.
func (p *Manager) GetRpc(id ...string) *rpc.Client {
	defer p.mxState.Unlock()
	p.mxState.Lock()
	if len(p.configs) == 0 {
		panic("connection manager has no rpc endpoint configured")
	}
	connectionId := p.getConnectionId(id...)
	config := p.configs[connectionId]
	// a non-positive MaxReferrer keeps a single client per endpoint
	maxReferrer := utils.TT(config.MaxReferrer > 0, config.MaxReferrer, 1)
	var connection *rpc.Client
	if len(p.rpcConnections[connectionId]) < maxReferrer {
		connection = CreateRpc(config)
		p.rpcConnections[connectionId] = append(p.rpcConnections[connectionId], connection)
	} else {
		connection = utils.RandomElement(p.rpcConnections[connectionId])
	}
	return connection
}

func CreateRpc(config *Config) *rpc.Client {
	if len(config.Headers) > 0 {
		return rpc.NewWithHeaders(config.GetRpcEndpoint(), config.Headers)
	}
	return rpc.New(config.GetRpcEndpoint())
}
