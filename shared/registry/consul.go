package registry

import (
	"fmt"

	capi "github.com/hashicorp/consul/api"
	"github.com/rs/zerolog"
)

// Registration describes a service instance to announce to Consul.
type Registration struct {
	Name      string
	ID        string
	Address   string
	Port      int
	HealthURL string
}

// Consul registers service instances with a Consul agent so other services
// can discover them.
type Consul struct {
	client *capi.Client
	logger *zerolog.Logger
}

// NewConsul connects to the Consul agent at the given address.
func NewConsul(address string, logger *zerolog.Logger) (*Consul, error) {
	cfg := capi.DefaultConfig()
	if address != "" {
		cfg.Address = address
	}

	client, err := capi.NewClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create consul client: %w", err)
	}

	return &Consul{client: client, logger: logger}, nil
}

// Register announces the service with an HTTP health check. Instances that
// stay critical for a minute are deregistered by the agent.
func (c *Consul) Register(reg Registration) error {
	err := c.client.Agent().ServiceRegister(&capi.AgentServiceRegistration{
		ID:      reg.ID,
		Name:    reg.Name,
		Address: reg.Address,
		Port:    reg.Port,
		Check: &capi.AgentServiceCheck{
			HTTP:                           reg.HealthURL,
			Interval:                       "10s",
			Timeout:                        "2s",
			DeregisterCriticalServiceAfter: "1m",
		},
	})
	if err != nil {
		return fmt.Errorf("failed to register service %q: %w", reg.Name, err)
	}

	c.logger.Info().Str("service_id", reg.ID).Msg("registered service with consul")

	return nil
}

// Deregister removes the service instance from the agent.
func (c *Consul) Deregister(id string) {
	if err := c.client.Agent().ServiceDeregister(id); err != nil {
		c.logger.Error().Err(err).Str("service_id", id).Msg("failed to deregister service")
	}
}
