// Code generated by protoc-gen-go.
// source: queue.proto
// DO NOT EDIT!

// Package rpcshape publishes the request/response message shapes the
// external GetQueue/Swipe RPC layer exchanges over this core's routing
// primitives (spec.md §1: transport and auth live outside this core, only
// the shapes are published here).
package rpcshape

import proto "github.com/golang/protobuf/proto"
import math "math"

// Reference imports to suppress errors if they are not otherwise used.
var _ = proto.Marshal
var _ = math.Inf

// AgeRange is an inclusive [Low, High] filter applied to candidate users.
type AgeRange struct {
	Low              *int32 `protobuf:"varint,1,opt,name=low" json:"low,omitempty"`
	High             *int32 `protobuf:"varint,2,opt,name=high" json:"high,omitempty"`
	XXX_unrecognized []byte `json:"-"`
}

func (m *AgeRange) Reset()         { *m = AgeRange{} }
func (m *AgeRange) String() string { return proto.CompactTextString(m) }
func (*AgeRange) ProtoMessage()    {}

func (m *AgeRange) GetLow() int32 {
	if m != nil && m.Low != nil {
		return *m.Low
	}
	return 0
}

func (m *AgeRange) GetHigh() int32 {
	if m != nil && m.High != nil {
		return *m.High
	}
	return 0
}

// QueueRequest mirrors the original's GetQueueRequest field set one-to-one:
// uid, lat/lng, radius, age_range, gender.
type QueueRequest struct {
	Uid              *string   `protobuf:"bytes,1,opt,name=uid" json:"uid,omitempty"`
	Latitude         *float64  `protobuf:"fixed64,2,opt,name=latitude" json:"latitude,omitempty"`
	Longitude        *float64  `protobuf:"fixed64,3,opt,name=longitude" json:"longitude,omitempty"`
	RadiusMeters     *float64  `protobuf:"fixed64,4,opt,name=radiusMeters" json:"radiusMeters,omitempty"`
	AgeRange         *AgeRange `protobuf:"bytes,5,opt,name=ageRange" json:"ageRange,omitempty"`
	Gender           *string   `protobuf:"bytes,6,opt,name=gender" json:"gender,omitempty"`
	XXX_unrecognized []byte    `json:"-"`
}

func (m *QueueRequest) Reset()         { *m = QueueRequest{} }
func (m *QueueRequest) String() string { return proto.CompactTextString(m) }
func (*QueueRequest) ProtoMessage()    {}

func (m *QueueRequest) GetUid() string {
	if m != nil && m.Uid != nil {
		return *m.Uid
	}
	return ""
}

func (m *QueueRequest) GetLatitude() float64 {
	if m != nil && m.Latitude != nil {
		return *m.Latitude
	}
	return 0
}

func (m *QueueRequest) GetLongitude() float64 {
	if m != nil && m.Longitude != nil {
		return *m.Longitude
	}
	return 0
}

func (m *QueueRequest) GetRadiusMeters() float64 {
	if m != nil && m.RadiusMeters != nil {
		return *m.RadiusMeters
	}
	return 0
}

func (m *QueueRequest) GetAgeRange() *AgeRange {
	if m != nil {
		return m.AgeRange
	}
	return nil
}

func (m *QueueRequest) GetGender() string {
	if m != nil && m.Gender != nil {
		return *m.Gender
	}
	return ""
}

// User is one candidate returned by a GetQueue stream.
type User struct {
	Uid              *string  `protobuf:"bytes,1,opt,name=uid" json:"uid,omitempty"`
	FirstName        *string  `protobuf:"bytes,2,opt,name=firstName" json:"firstName,omitempty"`
	LastName         *string  `protobuf:"bytes,3,opt,name=lastName" json:"lastName,omitempty"`
	Age              *int32   `protobuf:"varint,4,opt,name=age" json:"age,omitempty"`
	Gender           *string  `protobuf:"bytes,5,opt,name=gender" json:"gender,omitempty"`
	Latitude         *float64 `protobuf:"fixed64,6,opt,name=latitude" json:"latitude,omitempty"`
	Longitude        *float64 `protobuf:"fixed64,7,opt,name=longitude" json:"longitude,omitempty"`
	XXX_unrecognized []byte   `json:"-"`
}

func (m *User) Reset()         { *m = User{} }
func (m *User) String() string { return proto.CompactTextString(m) }
func (*User) ProtoMessage()    {}

func (m *User) GetUid() string {
	if m != nil && m.Uid != nil {
		return *m.Uid
	}
	return ""
}

func (m *User) GetAge() int32 {
	if m != nil && m.Age != nil {
		return *m.Age
	}
	return 0
}

// QueueResponseStream is the (non-gRPC) Go shape a caller drains one User
// at a time from, matching the original's tonic streaming response without
// reproducing gRPC itself (out of scope per spec.md §1).
type QueueResponseStream struct {
	Users            []*User `protobuf:"bytes,1,rep,name=users" json:"users,omitempty"`
	XXX_unrecognized []byte  `json:"-"`
}

func (m *QueueResponseStream) Reset()         { *m = QueueResponseStream{} }
func (m *QueueResponseStream) String() string { return proto.CompactTextString(m) }
func (*QueueResponseStream) ProtoMessage()    {}

func (m *QueueResponseStream) GetUsers() []*User {
	if m != nil {
		return m.Users
	}
	return nil
}

// SwipeRequest and SwipeResponse are published for completeness; the
// original leaves Swipe unimplemented (tonic::Status::unimplemented) and
// this spec does the same — no shard-routing semantics depend on swipe.
type SwipeRequest struct {
	Uid              *string `protobuf:"bytes,1,opt,name=uid" json:"uid,omitempty"`
	TargetUid        *string `protobuf:"bytes,2,opt,name=targetUid" json:"targetUid,omitempty"`
	Liked            *bool   `protobuf:"varint,3,opt,name=liked" json:"liked,omitempty"`
	XXX_unrecognized []byte  `json:"-"`
}

func (m *SwipeRequest) Reset()         { *m = SwipeRequest{} }
func (m *SwipeRequest) String() string { return proto.CompactTextString(m) }
func (*SwipeRequest) ProtoMessage()    {}

type SwipeResponse struct {
	Matched          *bool  `protobuf:"varint,1,opt,name=matched" json:"matched,omitempty"`
	XXX_unrecognized []byte `json:"-"`
}

func (m *SwipeResponse) Reset()         { *m = SwipeResponse{} }
func (m *SwipeResponse) String() string { return proto.CompactTextString(m) }
func (*SwipeResponse) ProtoMessage()    {}

func init() {
}
