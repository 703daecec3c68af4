package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"stayfront/entity"
	"stayfront/query"
)

func (s *Server) GetHotels(c echo.Context) error {
	q := s.hotels.List()
	hotels, err := mounted(c.Request().Context(), s, q)
	if err != nil {
		return queryError(c, q.Key, err)
	}
	return c.JSON(http.StatusOK, hotels)
}

func (s *Server) GetHotel(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	q := s.hotels.Get(id)
	hotel, err := mounted(c.Request().Context(), s, q)
	if err != nil {
		return queryError(c, q.Key, err)
	}
	return c.JSON(http.StatusOK, hotel)
}

func (s *Server) PostHotel(c echo.Context) error {
	var request entity.Hotel
	if err := c.Bind(&request); err != nil {
		return err
	}

	hotel, err := query.Mutate(c.Request().Context(), s.runtime, s.hotels.Create(request))
	if err != nil {
		return mutationError(c, err)
	}
	return c.JSON(http.StatusCreated, hotel)
}

func (s *Server) PutHotel(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var request entity.Hotel
	if err := c.Bind(&request); err != nil {
		return err
	}

	hotel, err := query.Mutate(c.Request().Context(), s.runtime, s.hotels.Update(id, request))
	if err != nil {
		return mutationError(c, err)
	}
	return c.JSON(http.StatusOK, hotel)
}

func (s *Server) DeleteHotel(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if _, err := query.Mutate(c.Request().Context(), s.runtime, s.hotels.Delete(id)); err != nil {
		return mutationError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// The section endpoints mirror the hotel admin form, which saves the
// address, amenity and description cards independently.

func (s *Server) PutHotelAddress(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var request entity.Address
	if err := c.Bind(&request); err != nil {
		return err
	}

	hotel, err := query.Mutate(c.Request().Context(), s.runtime, s.hotels.UpdateAddress(id, request))
	if err != nil {
		return mutationError(c, err)
	}
	return c.JSON(http.StatusOK, hotel)
}

func (s *Server) PutHotelAmenities(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var request struct {
		Amenities []string `json:"amenities"`
	}
	if err := c.Bind(&request); err != nil {
		return err
	}

	hotel, err := query.Mutate(c.Request().Context(), s.runtime, s.hotels.UpdateAmenities(id, request.Amenities))
	if err != nil {
		return mutationError(c, err)
	}
	return c.JSON(http.StatusOK, hotel)
}

func (s *Server) PutHotelDetails(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var request entity.HotelDetails
	if err := c.Bind(&request); err != nil {
		return err
	}

	hotel, err := query.Mutate(c.Request().Context(), s.runtime, s.hotels.UpdateDetails(id, request))
	if err != nil {
		return mutationError(c, err)
	}
	return c.JSON(http.StatusOK, hotel)
}
