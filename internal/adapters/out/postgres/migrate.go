package postgres

import (
	"marketplace/internal/adapters/out/postgres/accountrepo"
	"marketplace/internal/adapters/out/postgres/authorityrepo"
	"marketplace/internal/adapters/out/postgres/catalogrepo"
	"marketplace/internal/adapters/out/postgres/orderrepo"
	"marketplace/internal/adapters/out/postgres/requestrepo"
	"marketplace/internal/adapters/out/postgres/samplerepo"
	"marketplace/internal/adapters/out/postgres/stakerepo"

	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Tables lists every table the engine owns.
func Tables() []any {
	return []any{
		&orderrepo.OrderDTO{},
		&samplerepo.SampleDTO{},
		&stakerepo.ProviderStakeDTO{},
		&stakerepo.StakePolicyDTO{},
		&authorityrepo.AuthorityDTO{},
		&requestrepo.ServiceRequestDTO{},
		&requestrepo.OpenCountDTO{},
		&accountrepo.AccountDTO{},
		&catalogrepo.ServiceDTO{},
	}
}

// Open connects with duplicate key errors translated to gorm.ErrDuplicatedKey.
func Open(dsn string) (*gorm.DB, error) {
	return gorm.Open(gormpostgres.Open(dsn), &gorm.Config{TranslateError: true})
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(Tables()...)
}
