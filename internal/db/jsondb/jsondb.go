// Package jsondb implements the storage contract on top of a single JSON
// file. All records live in an in-memory cache which is flushed to the file
// on Close.
package jsondb

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"sync"

	"github.com/thoas/go-funk"

	"github.com/patric-chuzhbe/usersvc/internal/models"
	"github.com/patric-chuzhbe/usersvc/internal/user"
)

// JSONDB is a file-backed user store. The zero value is not usable,
// construct it with New.
type JSONDB struct {
	fileName string
	mu       sync.RWMutex
	Cache    CacheStruct
}

// CacheStruct is the serialized shape of the database file.
type CacheStruct struct {
	Users      map[int64]*user.User
	NextUserID int64
}

func initDBFile(fileName string) error {
	dbFile, err := os.OpenFile(fileName, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(dbFile, `{
	"Users": {},
	"NextUserID": 1
}`)
	if err != nil {
		return err
	}
	return dbFile.Close()
}

func writeToJSONFile(fileName string, cache interface{}) error {
	jsonData, err := json.MarshalIndent(cache, "", "\t")
	if err != nil {
		return fmt.Errorf("error marshaling JSON: %s", err)
	}

	file, err2 := os.OpenFile(fileName, os.O_WRONLY|os.O_TRUNC|os.O_CREATE, 0644)
	if err2 != nil {
		return fmt.Errorf("error opening file: %s", err2)
	}
	defer file.Close()

	_, err = file.Write(jsonData)
	if err != nil {
		return fmt.Errorf("error writing to file: %s", err)
	}

	return nil
}

func parseJSONFile(fileName string, cacheMap *CacheStruct) error {
	file, err := os.Open(fileName)
	if err != nil {
		return err
	}
	defer file.Close()

	decoder := json.NewDecoder(file)
	err = decoder.Decode(cacheMap)
	if err != nil {
		return err
	}

	return nil
}

// New loads the database from fileName, creating and initializing the file
// when it does not exist yet.
func New(fileName string) (*JSONDB, error) {
	theDB := JSONDB{
		fileName: fileName,
		Cache:    CacheStruct{},
	}

	err := parseJSONFile(theDB.fileName, &theDB.Cache)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, err
		}
		err := initDBFile(fileName)
		if err != nil {
			return nil, err
		}
		err = parseJSONFile(theDB.fileName, &theDB.Cache)
		if err != nil {
			return nil, err
		}
	}

	if theDB.Cache.Users == nil {
		theDB.Cache.Users = map[int64]*user.User{}
	}
	if theDB.Cache.NextUserID < 1 {
		theDB.Cache.NextUserID = 1
	}

	return &theDB, nil
}

func (db *JSONDB) usersSortedByID() []user.User {
	result := make([]user.User, 0, len(db.Cache.Users))
	for _, usr := range db.Cache.Users {
		result = append(result, *usr)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })

	return result
}

// FindAll returns every stored user ordered by id.
func (db *JSONDB) FindAll(ctx context.Context) ([]user.User, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	return db.usersSortedByID(), nil
}

// FindByActive returns the users whose Active flag equals the argument,
// ordered by id.
func (db *JSONDB) FindByActive(ctx context.Context, active bool) ([]user.User, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	return funk.Filter(
		db.usersSortedByID(),
		func(usr user.User) bool { return usr.Active == active },
	).([]user.User), nil
}

// FindByID returns the user with the given id. The boolean result reports
// whether the record exists.
func (db *JSONDB) FindByID(ctx context.Context, id int64) (*user.User, bool, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	usr, found := db.Cache.Users[id]
	if !found {
		return nil, false, nil
	}
	copied := *usr

	return &copied, true, nil
}

// FindByUsername returns the user with the given username. The boolean
// result reports whether the record exists.
func (db *JSONDB) FindByUsername(ctx context.Context, username string) (*user.User, bool, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	for _, usr := range db.Cache.Users {
		if usr.Username == username {
			copied := *usr
			return &copied, true, nil
		}
	}

	return nil, false, nil
}

// IsUsernameExists checks whether any stored user holds the given username.
func (db *JSONDB) IsUsernameExists(ctx context.Context, username string) (bool, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	for _, usr := range db.Cache.Users {
		if usr.Username == username {
			return true, nil
		}
	}

	return false, nil
}

// IsEmailExists checks whether any stored user holds the given email.
func (db *JSONDB) IsEmailExists(ctx context.Context, email string) (bool, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	for _, usr := range db.Cache.Users {
		if usr.Email == email {
			return true, nil
		}
	}

	return false, nil
}

// IsUserExists checks whether a user with the given id is stored.
func (db *JSONDB) IsUserExists(ctx context.Context, id int64) (bool, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	_, exists := db.Cache.Users[id]

	return exists, nil
}

// SaveUser upserts the record. A zero ID inserts the user under a freshly
// assigned id; a non-zero ID replaces the stored record. The username and
// email uniqueness constraints are enforced here so a conflicting write is
// rejected even when the caller's pre-checks raced.
func (db *JSONDB) SaveUser(ctx context.Context, usr *user.User) (*user.User, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, other := range db.Cache.Users {
		if other.ID == usr.ID {
			continue
		}
		if other.Username == usr.Username {
			return nil, models.ErrUsernameExists
		}
		if other.Email == usr.Email {
			return nil, models.ErrEmailExists
		}
	}

	toStore := *usr
	if toStore.ID == 0 {
		toStore.ID = db.Cache.NextUserID
		db.Cache.NextUserID++
	}
	db.Cache.Users[toStore.ID] = &toStore

	saved := toStore

	return &saved, nil
}

// DeleteUser removes the record with the given id. Deleting a missing id is
// a no-op.
func (db *JSONDB) DeleteUser(ctx context.Context, id int64) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	delete(db.Cache.Users, id)

	return nil
}

func (db *JSONDB) Ping(ctx context.Context) error {
	return nil
}

// Close flushes the cache to the database file.
func (db *JSONDB) Close() error {
	db.mu.RLock()
	defer db.mu.RUnlock()

	err := writeToJSONFile(db.fileName, db.Cache)
	if err != nil {
		return err
	}

	return nil
}
