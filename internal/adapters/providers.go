package adapters

import (
	"github.com/google/wire"
	"github.com/trebuchet-org/marketplace-deploy/internal/adapters/abi"
	"github.com/trebuchet-org/marketplace-deploy/internal/adapters/blockchain"
	"github.com/trebuchet-org/marketplace-deploy/internal/adapters/contracts"
	"github.com/trebuchet-org/marketplace-deploy/internal/adapters/interactive"
	"github.com/trebuchet-org/marketplace-deploy/internal/adapters/verification"
	"github.com/trebuchet-org/marketplace-deploy/internal/usecase"
)

// ContractsSet provides the Foundry artifact repository
var ContractsSet = wire.NewSet(
	contracts.NewRepository,
	wire.Bind(new(usecase.ContractRepository), new(*contracts.Repository)),
)

// ABISet provides constructor argument parsing and encoding
var ABISet = wire.NewSet(
	abi.NewCodec,
	wire.Bind(new(usecase.ConstructorArgsCodec), new(*abi.Codec)),
	wire.Bind(new(verification.ConstructorEncoder), new(*abi.Codec)),
)

// BlockchainSet provides the go-ethereum chain client
var BlockchainSet = wire.NewSet(
	blockchain.NewClient,
	wire.Bind(new(usecase.ChainClient), new(*blockchain.Client)),
)

// VerificationSet provides forge-based contract verification
var VerificationSet = wire.NewSet(
	verification.NewForgeVerifier,
	wire.Bind(new(usecase.ContractVerifier), new(*verification.ForgeVerifier)),
)

// InteractiveSet provides interactive implementations
var InteractiveSet = wire.NewSet(
	interactive.NewConfirmAdapter,
	wire.Bind(new(usecase.DeployConfirmer), new(*interactive.ConfirmAdapter)),

	interactive.NewSelectorAdapter,
	wire.Bind(new(usecase.ContractSelector), new(*interactive.SelectorAdapter)),
)

// AllAdapters includes all adapter sets
var AllAdapters = wire.NewSet(
	ContractsSet,
	ABISet,
	BlockchainSet,
	VerificationSet,
	InteractiveSet,
)
