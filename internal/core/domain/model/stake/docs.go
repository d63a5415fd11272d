// Package stake models provider collateral.
//
// Labs, genetic analysts and health professionals share one lifecycle,
// parameterised by kernel.ProviderKind:
//
//	Unstaked --Stake--> Staked --Unstake--> WaitingForUnstaked --RetrieveUnstake--> Unstaked
//
// Unstake is refused while the provider has pending orders, and retrieval
// is refused before the cooldown recorded at unstake time has elapsed.
// Fund movements are performed by the caller with the amounts returned here.
package stake
