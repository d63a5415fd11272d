package commands_test

import (
	"testing"
	"time"

	"marketplace/internal/adapters/out/memory"
	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/domain/model/authority"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/stake"
	"marketplace/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func keyCommand(t *testing.T, caller, key kernel.AccountID) commands.UpdateAuthorityKeyCommand {
	t.Helper()
	cmd, err := commands.NewUpdateAuthorityKeyCommand(caller, key)
	require.NoError(t, err)
	return cmd
}

func TestSudoUpdateAdminKeyCommandHandler(t *testing.T) {
	t.Run("should bootstrap once from root", func(t *testing.T) {
		uows := authorityUoWs{memory.NewUnitOfWorkFactory(memory.NewStore())}
		h := commands.NewSudoUpdateAdminKeyCommandHandler(uows, root)

		err := h.Handle(t.Context(), keyCommand(t, "intruder", admin))
		require.ErrorIs(t, err, errs.ErrUnauthorized)

		require.NoError(t, h.Handle(t.Context(), keyCommand(t, root, admin)))

		err = h.Handle(t.Context(), keyCommand(t, root, "admin-2"))
		require.ErrorIs(t, err, authority.ErrAdminAlreadyBootstrapped)
	})

	t.Run("should be disabled without a root key", func(t *testing.T) {
		uows := authorityUoWs{memory.NewUnitOfWorkFactory(memory.NewStore())}
		h := commands.NewSudoUpdateAdminKeyCommandHandler(uows, "")

		cmd, err := commands.NewUpdateAuthorityKeyCommand(root, admin)
		require.NoError(t, err)

		require.ErrorIs(t, h.Handle(t.Context(), cmd), errs.ErrUnauthorized)
	})
}

func TestUpdateAdminKeyCommandHandler(t *testing.T) {
	e := newEngine(t)
	h := commands.NewUpdateAdminKeyCommandHandler(authorityUoWs{e.uows})

	require.ErrorIs(t, h.Handle(e.ctx(), keyCommand(t, lab, lab)), errs.ErrUnauthorized)
	require.NoError(t, h.Handle(e.ctx(), keyCommand(t, admin, "admin-2")))

	assert.Equal(t, kernel.AccountID("admin-2"), *e.authority().AdminKey())
	require.ErrorIs(t, e.updateMinimumStake(admin, kernel.Lab, 10), errs.ErrUnauthorized)
	require.NoError(t, e.updateMinimumStake("admin-2", kernel.Lab, 10))
}

func TestUpdateEscrowKeyCommandHandler(t *testing.T) {
	e := newEngine(t)
	h := commands.NewUpdateEscrowKeyCommandHandler(authorityUoWs{e.uows})

	require.ErrorIs(t, h.Handle(e.ctx(), keyCommand(t, escrow, "escrow-2")), errs.ErrUnauthorized)
	require.NoError(t, h.Handle(e.ctx(), keyCommand(t, admin, "escrow-2")))

	o, err := e.createOrder(customer, e.service(lab), order.RequestTest)
	require.NoError(t, err)
	require.ErrorIs(t, e.setPaid(o, escrow), errs.ErrUnauthorized)
	require.NoError(t, e.setPaid(o, "escrow-2"))
}

func TestUpdateStakePolicyCommandHandlers(t *testing.T) {
	e := newEngine(t)

	require.ErrorIs(t, e.updateMinimumStake(lab, kernel.Lab, 10), errs.ErrUnauthorized)
	require.NoError(t, e.updateMinimumStake(admin, kernel.Lab, 10))
	require.NoError(t, e.updateUnstakeTime(admin, kernel.Lab, time.Hour))

	policy := e.policy(kernel.Lab)
	assert.Equal(t, "10", policy.MinimumStake().String())
	assert.Equal(t, time.Hour, policy.UnstakeCooldown())

	require.ErrorIs(t, e.updateMinimumStake(admin, kernel.HealthProfessional, 10), stake.ErrPolicyDoesNotExist)
}

func TestUpdateStakePolicyCommands_Validation(t *testing.T) {
	_, err := commands.NewUpdateMinimumStakeAmountCommand(admin, kernel.Lab, kernel.ZeroBalance())
	require.ErrorIs(t, err, stake.ErrMinimumStakeIsNotPositive)

	_, err = commands.NewUpdateUnstakeTimeCommand(admin, kernel.Lab, 0)
	require.ErrorIs(t, err, stake.ErrUnstakeCooldownIsNotPositive)
}

func TestMinimumStakeChange_AppliesToNewStakesOnly(t *testing.T) {
	e := newEngine(t)
	require.NoError(t, e.register(kernel.Lab, lab))
	require.NoError(t, e.stake(kernel.Lab, lab))

	require.NoError(t, e.updateMinimumStake(admin, kernel.Lab, 300))

	assert.Equal(t, "100", e.provider(kernel.Lab, lab).StakeAmount().String())

	require.NoError(t, e.register(kernel.Lab, customer))
	require.NoError(t, e.stake(kernel.Lab, customer))
	assert.Equal(t, "300", e.provider(kernel.Lab, customer).StakeAmount().String())
}

func TestInitializeGenesisCommandHandler(t *testing.T) {
	e := newEngine(t)
	require.NoError(t, e.updateMinimumStake(admin, kernel.Lab, 7))

	other, otherEscrow := kernel.AccountID("admin-2"), kernel.AccountID("escrow-2")
	cmd, err := commands.NewInitializeGenesisCommand(&other, &otherEscrow,
		[]commands.PolicyDefaults{
			{Kind: kernel.Lab, MinimumStake: kernel.NewBalance(100), UnstakeCooldown: time.Hour},
			{Kind: kernel.HealthProfessional, MinimumStake: kernel.NewBalance(20), UnstakeCooldown: time.Hour},
		},
		[]commands.GenesisBalance{{Account: customer, Amount: kernel.NewBalance(1_000)}},
	)
	require.NoError(t, err)
	h := commands.NewInitializeGenesisCommandHandler(allUoWs{e.uows})

	require.NoError(t, h.Handle(e.ctx(), cmd))

	a := e.authority()
	assert.Equal(t, admin, *a.AdminKey())
	assert.Equal(t, escrow, *a.EscrowKey())
	assert.Equal(t, "7", e.policy(kernel.Lab).MinimumStake().String())
	assert.Equal(t, "20", e.policy(kernel.HealthProfessional).MinimumStake().String())
	assert.Equal(t, "1000", e.balance(customer))
}

func TestNewInitializeGenesisCommand_RejectsBadPolicy(t *testing.T) {
	_, err := commands.NewInitializeGenesisCommand(nil, nil,
		[]commands.PolicyDefaults{{Kind: kernel.Lab, MinimumStake: kernel.ZeroBalance(), UnstakeCooldown: time.Hour}},
		nil,
	)

	require.ErrorIs(t, err, stake.ErrMinimumStakeIsNotPositive)
}
