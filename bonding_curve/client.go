package bonding_curve

import (
	"github.com/krazyTry/launchpad-go/runtime"
)

// LaunchpadClient groups high-level services.
type LaunchpadClient struct {
	Pool         *PoolService
	Migration    *MigrationService
	TargetConfig *TargetConfigService
	Accounts     *AccountService
	State        *StateService
	Program      *LaunchpadProgram
}

// NewLaunchpadClient constructs a client whose services share one program.
func NewLaunchpadClient(rt *runtime.Runtime, opts ...Option) *LaunchpadClient {
	program := NewLaunchpadProgram(rt, opts...)
	return &LaunchpadClient{
		Pool:         NewPoolService(program),
		Migration:    NewMigrationService(program),
		TargetConfig: NewTargetConfigService(program),
		Accounts:     NewAccountService(program),
		State:        NewStateService(program),
		Program:      program,
	}
}
