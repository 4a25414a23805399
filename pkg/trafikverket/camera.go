package trafikverket

import (
	"context"

	"github.com/beevik/etree"
)

// CameraFromElement maps one Camera element to a CameraInfo. The photo time
// keeps its wire wall clock with the Stockholm zone attached; ModifiedTime
// is UTC.
func CameraFromElement(node *etree.Element) (*CameraInfo, error) {
	helper := NewNodeHelper(node)
	name, err := helper.Text("Name")
	if err != nil {
		return nil, err
	}
	id, err := helper.Text("Id")
	if err != nil {
		return nil, err
	}
	active, err := helper.Bool("Active")
	if err != nil {
		return nil, err
	}
	deleted, err := helper.Bool("Deleted")
	if err != nil {
		return nil, err
	}
	description, err := helper.Text("Description")
	if err != nil {
		return nil, err
	}
	direction, err := helper.Text("Direction")
	if err != nil {
		return nil, err
	}
	fullSizePhoto, err := helper.Bool("HasFullSizePhoto")
	if err != nil {
		return nil, err
	}
	location, err := helper.Text("Location")
	if err != nil {
		return nil, err
	}
	modified, err := helper.DateTimeModified("ModifiedTime")
	if err != nil {
		return nil, err
	}
	photoTime, err := helper.DateTime("PhotoTime")
	if err != nil {
		return nil, err
	}
	photoURL, err := helper.Text("PhotoUrl")
	if err != nil {
		return nil, err
	}
	status, err := helper.Text("Status")
	if err != nil {
		return nil, err
	}
	cameraType, err := helper.Text("Type")
	if err != nil {
		return nil, err
	}
	if name == nil {
		return nil, missingFieldError("Camera", "Name")
	}
	if id == nil {
		return nil, missingFieldError("Camera", "Id")
	}

	loc, err := stockholm()
	if err != nil {
		return nil, err
	}
	return &CameraInfo{
		Name:          *name,
		ID:            *id,
		Active:        active != nil && *active,
		Deleted:       deleted != nil && *deleted,
		Description:   description,
		Direction:     direction,
		FullSizePhoto: fullSizePhoto != nil && *fullSizePhoto,
		Location:      location,
		ModifiedTime:  modified,
		PhotoTime:     inZone(photoTime, loc),
		PhotoURL:      photoURL,
		Status:        status,
		CameraType:    cameraType,
	}, nil
}

// GetCamera retrieves exactly one traffic camera by name.
func (c *Client) GetCamera(ctx context.Context, name string) (*CameraInfo, error) {
	cameras, err := c.MakeRequest(ctx, Query{
		ObjectType:    "Camera",
		SchemaVersion: "1.0",
		Includes:      CameraInfoFields,
		Filters:       []Filter{Field(OpEqual, "Name", name)},
	})
	if err != nil {
		return nil, err
	}
	if len(cameras) == 0 {
		return nil, ErrNoCamera
	}
	if len(cameras) > 1 {
		return nil, ErrMultipleCameras
	}
	return CameraFromElement(cameras[0])
}
