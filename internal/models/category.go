// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import jsoniter "github.com/json-iterator/go"

// Category is read-only reference data used for filtering posts by name.
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// UnmarshalJSON accepts either "id" or the raw Mongo "_id" as identifier.
func (c *Category) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID   string `json:"id"`
		OID  string `json:"_id"`
		Name string `json:"name"`
	}
	if err := jsoniter.ConfigCompatibleWithStandardLibrary.Unmarshal(data, &raw); err != nil {
		return err
	}
	c.ID = raw.ID
	if c.ID == "" {
		c.ID = raw.OID
	}
	c.Name = raw.Name
	return nil
}
