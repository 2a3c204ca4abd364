package ports

import "github.com/lcalzada-xor/wparse/internal/core/domain"

// Storage defines the behavior for data persistence.
type Storage interface {
	// SaveNetwork saves or updates a network in the database.
	SaveNetwork(network domain.Network) error
	SaveNetworksBatch(networks []domain.Network) error
	GetNetwork(bssid string) (*domain.Network, error)

	// GetAllNetworks retrieves all known networks.
	GetAllNetworks() ([]domain.Network, error)

	// GetNetworksByFilter retrieves networks matching the filter criteria.
	GetNetworksByFilter(filter domain.NetworkFilter) ([]domain.Network, error)

	// SaveSession records a scan session.
	SaveSession(session domain.ScanSession) error

	// Close closes the storage connection.
	Close() error
}
