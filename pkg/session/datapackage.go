package session

import (
	"fmt"
	"time"

	"github.com/go-archipelago/client/pkg/lookup"
	"github.com/go-archipelago/client/pkg/protocol"
	"github.com/go-archipelago/client/pkg/session/dpcache"
)

// fetchDataPackages populates the per-game lookup tables for every game in
// the room, serving from the on-disk cache where the RoomInfo checksum
// still matches and fetching the rest in one GetDataPackage request. Runs
// during the handshake, before the reader goroutine starts.
func (s *Session) fetchDataPackages() error {
	cache := s.openCache()
	if cache != nil {
		defer cache.Close()
	}

	var missing []string
	for _, game := range s.roomInfo.Games {
		checksum := s.roomInfo.DataPackageChecksums[game]
		if cache != nil && checksum != "" {
			if gd, ok := cache.Load(game, checksum); ok {
				s.addLookup(game, gd)
				continue
			}
		}
		missing = append(missing, game)
	}
	if len(missing) == 0 {
		return nil
	}

	err := s.SendPacket(&protocol.GetDataPackagePacket{
		Cmd:   protocol.CmdGetDataPackage,
		Games: missing,
	})
	if err != nil {
		return err
	}

	deadline := time.Now().Add(handshakeTimeout)
	for time.Now().Before(deadline) {
		pkts, err := s.readFrame(time.Until(deadline))
		if err != nil {
			return fmt.Errorf("session: waiting for DataPackage: %w", err)
		}
		for _, p := range pkts {
			dp, ok := p.(*protocol.DataPackagePacket)
			if !ok {
				continue
			}
			for game, gd := range dp.Data.Games {
				s.addLookup(game, &gd)
				if cache != nil {
					if err := cache.Store(game, gd); err != nil {
						s.Logger.Printf("session: %v", err)
					}
				}
			}
			return nil
		}
	}
	return fmt.Errorf("session: DataPackage never arrived")
}

func (s *Session) openCache() *dpcache.Cache {
	path, err := dpcache.DefaultPath()
	if err != nil {
		s.Logger.Printf("session: data package cache unavailable: %v", err)
		return nil
	}
	cache, err := dpcache.Open(path)
	if err != nil {
		s.Logger.Printf("session: data package cache unavailable: %v", err)
		return nil
	}
	return cache
}

func (s *Session) addLookup(game string, gd *protocol.GameData) {
	gl := &lookup.GameLookup{
		Items:     lookup.FromNameToID(gd.ItemNameToID),
		Locations: lookup.FromNameToID(gd.LocationNameToID),
	}
	s.mu.Lock()
	s.lookups[game] = gl
	s.mu.Unlock()
}
