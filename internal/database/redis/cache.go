package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/ds124wfegd/hotel-backoffice/internal/entity"
)

// CacheRepository кэширует справочные сущности (отели и номера) в redis,
// чтобы разгрузить postgres на читающих запросах
type CacheRepository struct {
	client *redis.Client
	ctx    context.Context
	ttl    time.Duration
}

func NewCacheRepository(client *redis.Client, ttl time.Duration) *CacheRepository {
	return &CacheRepository{
		client: client,
		ctx:    context.Background(),
		ttl:    ttl,
	}
}

func (r *CacheRepository) SetHotel(hotel *entity.Hotel) error {
	data, err := json.Marshal(hotel)
	if err != nil {
		return err
	}

	return r.client.Set(r.ctx, hotelKey(hotel.ID), data, r.ttl).Err()
}

// GetHotel возвращает (nil, nil) при промахе кэша
func (r *CacheRepository) GetHotel(id int64) (*entity.Hotel, error) {
	data, err := r.client.Get(r.ctx, hotelKey(id)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var hotel entity.Hotel
	if err := json.Unmarshal([]byte(data), &hotel); err != nil {
		return nil, err
	}

	return &hotel, nil
}

func (r *CacheRepository) DeleteHotel(id int64) error {
	return r.client.Del(r.ctx, hotelKey(id)).Err()
}

func (r *CacheRepository) SetRoom(room *entity.Room) error {
	data, err := json.Marshal(room)
	if err != nil {
		return err
	}

	return r.client.Set(r.ctx, roomKey(room.ID), data, r.ttl).Err()
}

// GetRoom возвращает (nil, nil) при промахе кэша
func (r *CacheRepository) GetRoom(id int64) (*entity.Room, error) {
	data, err := r.client.Get(r.ctx, roomKey(id)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var room entity.Room
	if err := json.Unmarshal([]byte(data), &room); err != nil {
		return nil, err
	}

	return &room, nil
}

func (r *CacheRepository) DeleteRoom(id int64) error {
	return r.client.Del(r.ctx, roomKey(id)).Err()
}

// IncrementRoomPopularity учитывает бронирование номера в рейтинге спроса
func (r *CacheRepository) IncrementRoomPopularity(roomID int64) error {
	return r.client.ZIncrBy(r.ctx, "popular_rooms", 1, fmt.Sprintf("%d", roomID)).Err()
}

func (r *CacheRepository) GetPopularRooms(count int) ([]string, error) {
	result, err := r.client.ZRevRange(r.ctx, "popular_rooms", 0, int64(count-1)).Result()
	if err != nil {
		return nil, err
	}
	return result, nil
}

func hotelKey(id int64) string {
	return fmt.Sprintf("hotel:%d", id)
}

func roomKey(id int64) string {
	return fmt.Sprintf("room:%d", id)
}
