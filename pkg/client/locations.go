package client

import "strconv"

// SendLocation reports one location (by name) as checked. Returns true
// immediately without touching the network when the location is not in the
// missing set, so re-sends are free and idempotent. Otherwise the check is
// scheduled and awaited up to ServerTimeout; on local completion the
// location leaves the missing set and the item-sent notification fires.
func (c *Client) SendLocation(location string) bool {
	return c.SendLocations(location)
}

// SendLocations is the batch form of SendLocation. Notifications fire per
// location in the order given.
func (c *Client) SendLocations(locations ...string) bool {
	c.mu.Lock()
	pending := make([]string, 0, len(locations))
	for _, loc := range locations {
		if _, ok := c.missing[loc]; ok {
			pending = append(pending, loc)
		}
	}
	c.mu.Unlock()
	if len(pending) == 0 {
		return true
	}
	if !c.IsConnected() {
		return false
	}

	sess := c.session
	return c.runWithTimeout(func() {
		ids := make([]int64, 0, len(pending))
		for _, loc := range pending {
			if id, ok := c.gameLookup.Locations.ID(loc); ok {
				ids = append(ids, id)
			}
		}
		if err := sess.CompleteLocationChecks(ids...); err != nil {
			c.Logger.Printf("apclient: location checks: %v", err)
			return
		}
		for _, loc := range pending {
			c.mu.Lock()
			delete(c.missing, loc)
			c.mu.Unlock()
			for _, fn := range c.onItemSent {
				fn(loc)
			}
		}
	})
}

// GetOutstandingItems drains the queue of items granted since the last
// call, names resolved.
func (c *Client) GetOutstandingItems() []ReceivedItem {
	c.mu.Lock()
	queued := c.received
	c.received = nil
	c.mu.Unlock()

	out := make([]ReceivedItem, 0, len(queued))
	for _, item := range queued {
		out = append(out, ReceivedItem{
			Item:         item,
			ItemName:     c.ItemName(item.Item, c.PlayerSlot),
			LocationName: c.LocationName(item.Location, item.Player),
			PlayerName:   c.PlayerNameBySlot(item.Player),
		})
	}
	return out
}

// ItemName resolves an item id against the owning player's game,
// memoizing the answer.
func (c *Client) ItemName(id int64, playerSlot int) string {
	c.mu.Lock()
	if name, ok := c.itemNames[id]; ok {
		c.mu.Unlock()
		return name
	}
	c.mu.Unlock()

	name := c.resolveName(id, playerSlot, true)
	c.mu.Lock()
	if c.itemNames != nil {
		c.itemNames[id] = name
	}
	c.mu.Unlock()
	return name
}

// LocationName resolves a location id against the owning player's game,
// memoizing the answer.
func (c *Client) LocationName(id int64, playerSlot int) string {
	c.mu.Lock()
	if name, ok := c.locationNames[id]; ok {
		c.mu.Unlock()
		return name
	}
	c.mu.Unlock()

	name := c.resolveName(id, playerSlot, false)
	c.mu.Lock()
	if c.locationNames != nil {
		c.locationNames[id] = name
	}
	c.mu.Unlock()
	return name
}

func (c *Client) resolveName(id int64, playerSlot int, item bool) string {
	fallback := strconv.FormatInt(id, 10)
	sess := c.session
	if sess == nil || playerSlot < 0 || playerSlot >= len(c.PlayerGames) {
		return fallback
	}
	gl, err := sess.Lookup(c.PlayerGames[playerSlot])
	if err != nil {
		return fallback
	}
	if item {
		return gl.Items.NameOr(id, fallback)
	}
	return gl.Locations.NameOr(id, fallback)
}
