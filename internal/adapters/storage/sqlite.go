package storage

import (
	"time"

	"github.com/lcalzada-xor/wparse/internal/core/domain"
	"github.com/lcalzada-xor/wparse/internal/core/ports"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// SQLiteAdapter implements ports.Storage using GORM and SQLite.
type SQLiteAdapter struct {
	db *gorm.DB
}

// NetworkModel is the GORM model for decoded networks.
type NetworkModel struct {
	BSSID        string `gorm:"primaryKey;column:bssid"`
	SSID         string `gorm:"column:ssid"`
	Hidden       bool
	Capabilities string // e.g. "[WPA2-PSK-CCMP-128][RSN-PSK-CCMP-128][ESS]"
	Frequency    int    // 2412, 5180, etc.
	Channel      int
	ChannelWidth string // "20MHz".."320MHz"
	CenterFreq0  int
	CenterFreq1  int
	Mode         string // "n", "ac", "ax", "be"
	MaxRate      int
	Streams      int
	RSSI         int
	Country      string
	StationCount int
	Utilization  int
	WPS          bool
	Passpoint    bool
	MLDMAC       string
	LinkCount    int
	Source       string
	SessionID    string
	Beacons      int
	FirstSeen    time.Time
	LastSeen     time.Time
}

// SessionModel is the GORM model for scan sessions.
type SessionModel struct {
	ID        string `gorm:"primaryKey"`
	Sources   string // comma separated capture files
	StartedAt time.Time
	Networks  int
}

// NewSQLiteAdapter initializes the database and migrates schema.
func NewSQLiteAdapter(path string) (*SQLiteAdapter, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	// Auto Migrate
	if err := db.AutoMigrate(&NetworkModel{}, &SessionModel{}); err != nil {
		return nil, err
	}

	// Create Indices for Performance
	db.Exec("CREATE INDEX IF NOT EXISTS idx_networks_last_seen ON network_models(last_seen)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_networks_ssid ON network_models(ssid)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_networks_mode ON network_models(mode)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_networks_session ON network_models(session_id)")

	return &SQLiteAdapter{db: db}, nil
}

// SaveNetwork saves or updates a network.
func (a *SQLiteAdapter) SaveNetwork(n domain.Network) error {
	model := toModel(n)

	// Upsert on BSSID, update all fields on conflict.
	return a.db.Save(&model).Error
}

// SaveNetworksBatch saves multiple networks in a single transaction.
func (a *SQLiteAdapter) SaveNetworksBatch(networks []domain.Network) error {
	if len(networks) == 0 {
		return nil
	}

	models := make([]NetworkModel, len(networks))
	for i, n := range networks {
		models[i] = toModel(n)
	}

	return a.db.Transaction(func(tx *gorm.DB) error {
		return tx.Clauses(clause.OnConflict{
			UpdateAll: true,
		}).CreateInBatches(models, 100).Error
	})
}

// GetNetwork retrieves a network by BSSID.
func (a *SQLiteAdapter) GetNetwork(bssid string) (*domain.Network, error) {
	var model NetworkModel
	if err := a.db.First(&model, "bssid = ?", bssid).Error; err != nil {
		return nil, err
	}
	return toDomain(model), nil
}

// GetAllNetworks retrieves all networks.
func (a *SQLiteAdapter) GetAllNetworks() ([]domain.Network, error) {
	var models []NetworkModel
	if err := a.db.Order("last_seen DESC").Find(&models).Error; err != nil {
		return nil, err
	}

	networks := make([]domain.Network, len(models))
	for i, m := range models {
		networks[i] = *toDomain(m)
	}
	return networks, nil
}

// GetNetworksByFilter retrieves networks matching the filter criteria
func (a *SQLiteAdapter) GetNetworksByFilter(filter domain.NetworkFilter) ([]domain.Network, error) {
	query := a.db.Order("last_seen DESC")

	// Apply filters dynamically
	if filter.SSID != "" {
		query = query.Where("ssid LIKE ?", "%"+filter.SSID+"%")
	}
	if filter.Security != "" {
		query = query.Where("capabilities LIKE ?", "%"+filter.Security+"%")
	}
	if filter.Mode != "" {
		query = query.Where("mode = ?", filter.Mode)
	}
	if filter.MinRSSI != 0 {
		query = query.Where("rssi >= ?", filter.MinRSSI)
	}
	if filter.Hidden != nil {
		query = query.Where("hidden = ?", *filter.Hidden)
	}
	if filter.HasWPS != nil {
		query = query.Where("wps = ?", *filter.HasWPS)
	}
	if !filter.SeenAfter.IsZero() {
		query = query.Where("last_seen >= ?", filter.SeenAfter)
	}
	if !filter.SeenBefore.IsZero() {
		query = query.Where("last_seen <= ?", filter.SeenBefore)
	}

	var models []NetworkModel
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}

	networks := make([]domain.Network, len(models))
	for i, m := range models {
		networks[i] = *toDomain(m)
	}
	return networks, nil
}

// SaveSession records a scan session.
func (a *SQLiteAdapter) SaveSession(s domain.ScanSession) error {
	model := sessionToModel(s)
	return a.db.Save(&model).Error
}

func (a *SQLiteAdapter) Close() error {
	sqlDB, err := a.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Ensure interface compliance
var _ ports.Storage = (*SQLiteAdapter)(nil)
