package discovery

import (
	"context"
	"fmt"

	"github.com/example/giftstore/pkg/config"
	clientv3 "go.etcd.io/etcd/client/v3"
)

// ServiceRegistry announces this instance in etcd so front-end deployments
// can locate the API. Registration is optional infrastructure: callers are
// expected to continue without it when etcd is unreachable.
type ServiceRegistry struct {
	client *clientv3.Client
	config *config.EtcdConfig
}

type ServiceInstance struct {
	Name string
	Host string
	Port int
}

func NewServiceRegistry(cfg *config.EtcdConfig) (*ServiceRegistry, error) {
	cli, err := clientv3.New(clientv3.Config{
		Endpoints:   cfg.Endpoints,
		DialTimeout: cfg.DialTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to etcd: %w", err)
	}

	return &ServiceRegistry{client: cli, config: cfg}, nil
}

func (r *ServiceRegistry) key(instance *ServiceInstance) string {
	return fmt.Sprintf("%s%s/%s:%d", r.config.Prefix, instance.Name, instance.Host, instance.Port)
}

// Register puts the instance under a 30 second lease and keeps it alive for
// the lifetime of ctx.
func (r *ServiceRegistry) Register(ctx context.Context, instance *ServiceInstance) error {
	lease, err := r.client.Grant(ctx, 30)
	if err != nil {
		return fmt.Errorf("failed to create lease: %w", err)
	}

	value := fmt.Sprintf("%s:%d", instance.Host, instance.Port)
	if _, err := r.client.Put(ctx, r.key(instance), value, clientv3.WithLease(lease.ID)); err != nil {
		return fmt.Errorf("failed to register service: %w", err)
	}

	ch, err := r.client.KeepAlive(ctx, lease.ID)
	if err != nil {
		return fmt.Errorf("failed to keep alive: %w", err)
	}

	go func() {
		for ka := range ch {
			_ = ka
		}
	}()

	return nil
}

func (r *ServiceRegistry) Deregister(ctx context.Context, instance *ServiceInstance) error {
	if _, err := r.client.Delete(ctx, r.key(instance)); err != nil {
		return fmt.Errorf("failed to deregister service: %w", err)
	}
	return nil
}

func (r *ServiceRegistry) Close() error {
	return r.client.Close()
}
