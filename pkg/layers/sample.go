/*
 Licensed under the Apache License, Version 2.0 (the "License");
 you may not use this file except in compliance with the License.
 You may obtain a copy of the License at

     https://www.apache.org/licenses/LICENSE-2.0

 Unless required by applicable law or agreed to in writing, software
 distributed under the License is distributed on an "AS IS" BASIS,
 WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 See the License for the specific language governing permissions and
 limitations under the License.
*/

package layers

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
)

const (
	// SampleLayerNum identifies the layer
	SampleLayerNum = 1999
	// SampleSize is the number of bytes one record takes in the capture buffer
	SampleSize = 4
)

var ErrTruncatedSample = errors.New("sample record shorter than 4 bytes")

// Sample is one record of the capture buffer: two signed 16-bit ADC
// values packed into a little-endian 32-bit word, channel A in the low half.
type Sample struct {
	ChA int16
	ChB int16
	Raw uint32
}

// DecodeSample splits a capture word into its channels.
func DecodeSample(word uint32) Sample {
	return Sample{
		ChA: int16(uint16(word)),
		ChB: int16(uint16(word >> 16)),
		Raw: word,
	}
}

// NewSample packs two channel values the way the recorder stores them.
func NewSample(chA, chB int16) Sample {
	return DecodeSample(uint32(uint16(chA)) | uint32(uint16(chB))<<16)
}

// String formats the sample as "%5d %5d %10d".
func (s Sample) String() string {
	return fmt.Sprintf("%5d %5d %10d", s.ChA, s.ChB, s.Raw)
}

// SampleLayer decodes a single capture record.
type SampleLayer struct {
	layers.BaseLayer
	Sample
}

var SampleLayerType = gopacket.RegisterLayerType(SampleLayerNum,
	gopacket.LayerTypeMetadata{Name: "SampleLayerType", Decoder: gopacket.DecodeFunc(DecodeSampleLayer)})

var _ gopacket.DecodingLayer = &SampleLayer{}

// LayerType returns the type of the Sample layer in the layer catalog
func (s *SampleLayer) LayerType() gopacket.LayerType {
	return SampleLayerType
}

func (s *SampleLayer) CanDecode() gopacket.LayerClass {
	return SampleLayerType
}

// NextLayerType returns SampleLayerType while there are bytes left, so a
// packet built from a buffer slice decodes into consecutive records.
func (s *SampleLayer) NextLayerType() gopacket.LayerType {
	if len(s.Payload) >= SampleSize {
		return gopacket.LayerType(SampleLayerNum)
	}
	return gopacket.LayerTypePayload
}

func (s *SampleLayer) DecodeFromBytes(data []byte, df gopacket.DecodeFeedback) error {
	if len(data) < SampleSize {
		df.SetTruncated()
		return ErrTruncatedSample
	}
	s.BaseLayer = layers.BaseLayer{
		Contents: data[:SampleSize],
		Payload:  data[SampleSize:],
	}
	s.Sample = DecodeSample(binary.LittleEndian.Uint32(data[:SampleSize]))
	return nil
}

// SerializeTo writes the record as it would appear in the capture buffer
func (s *SampleLayer) SerializeTo(b gopacket.SerializeBuffer, opts gopacket.SerializeOptions) error {
	bytes, err := b.PrependBytes(SampleSize)
	if err != nil {
		return err
	}
	word := uint32(uint16(s.ChA)) | uint32(uint16(s.ChB))<<16
	binary.LittleEndian.PutUint32(bytes, word)
	return nil
}

func DecodeSampleLayer(data []byte, p gopacket.PacketBuilder) error {
	s := &SampleLayer{}
	err := s.DecodeFromBytes(data, p)
	if err != nil {
		return err
	}
	p.AddLayer(s)
	return p.NextDecoder(s.NextLayerType())
}
