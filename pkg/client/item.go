package client

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/upOwa/unleashed-py/pkg/endpoint"
	"github.com/upOwa/unleashed-py/pkg/pagination"
)

// Item reads a single entity by Guid from resources with an id URI, e.g.
// StockOnHand or Assemblies. Single-item responses are the entity object
// itself, with no envelope.
type Item struct {
	client *Client
	desc   endpoint.Descriptor
}

// Item returns a client for one entity of the named resource.
func (c *Client) Item(resource, guid string) *Item {
	return &Item{
		client: c,
		desc: endpoint.Descriptor{
			BaseURL:  c.config.BaseURL,
			Resource: resource,
			ID:       guid,
		},
	}
}

// Result fetches the entity and returns its decoded-then-reencoded JSON
// body. Every field value survives exactly, including nulls and date-wrapper
// strings like "/Date(1583240449473)/"; whitespace and key order normalize.
func (i *Item) Result(ctx context.Context) ([]byte, error) {
	resp, err := i.client.get(ctx, i.desc, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	dec := json.NewDecoder(resp.Body)
	dec.UseNumber()

	var body any
	if err := dec.Decode(&body); err != nil {
		return nil, fmt.Errorf("decode %s/%s: %w", i.desc.Resource, i.desc.ID, err)
	}

	out, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encode %s/%s: %w", i.desc.Resource, i.desc.ID, err)
	}
	return out, nil
}

// ItemDetail reads a sub-resource of a single entity, e.g.
// StockOnHand/{guid}/AllWarehouses. Detail responses carry the usual list
// envelope and the Items array is returned rather than the wrapper.
type ItemDetail struct {
	client *Client
	desc   endpoint.Descriptor
}

// ItemDetail returns a client for the named detail of one entity.
func (c *Client) ItemDetail(resource, guid, detail string) *ItemDetail {
	return &ItemDetail{
		client: c,
		desc: endpoint.Descriptor{
			BaseURL:  c.config.BaseURL,
			Resource: resource,
			ID:       guid,
			Detail:   detail,
		},
	}
}

// Results fetches the detail endpoint and returns its Items serialized.
func (d *ItemDetail) Results(ctx context.Context) ([]byte, error) {
	resp, err := d.client.get(ctx, d.desc, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	env, err := pagination.DecodeEnvelope(resp.Body)
	if err != nil {
		return nil, err
	}
	return marshalItems(env.Items)
}
