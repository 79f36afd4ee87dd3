// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package store persists users and votes.

# Interface

Store exposes a get and a save per collection. Saves always replace the
whole collection:

	votes, err := s.GetVotes(ctx)
	votes = append(votes, vote)
	err = s.SaveVotes(ctx, votes)

Nothing serializes that read-modify-write sequence. Two writers that read
the same snapshot both save, and the last save wins.

# Backends

  - MemoryStore: volatile, in-process
  - FileStore: users.json and votes.json in a directory
  - SQLStore: sqlite or postgres tables (see package db)
  - S3Store: users.json and votes.json as objects in a bucket

Open picks one from configuration:

	s, err := store.Open(ctx, cfg)
	defer s.Close()

# Errors

Backend failures wrap common.ErrStorage. The SQL backend reports a
duplicate username as common.ErrConflict because of its unique index.
*/
package store
