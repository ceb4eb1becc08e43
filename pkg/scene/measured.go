package scene

import (
	"fmt"

	"github.com/aeonrender/photon/pkg/bsdf"
	"github.com/aeonrender/photon/pkg/loaders"
	"github.com/aeonrender/photon/pkg/warp"
)

// LoadMeasuredBSDF loads a tensor-file container and builds the five
// Marginal2D tables a tabulated BRDF samples and evaluates through,
// validating each field's rank and dtype against the container's fixed
// schema before handing the raw payloads to warp.NewMarginal2D.
func LoadMeasuredBSDF(filename string) (bsdf.Measured, error) {
	tf, err := loaders.LoadTensorFile(filename)
	if err != nil {
		return bsdf.Measured{}, err
	}

	thetaI, ok := tf.Fields["theta_i"]
	if !ok || len(thetaI.Shape) != 1 || thetaI.Dtype != loaders.DtypeFloat32 {
		return bsdf.Measured{}, fmt.Errorf("invalid tensor file: bad theta_i")
	}
	phiI, ok := tf.Fields["phi_i"]
	if !ok || len(phiI.Shape) != 1 || phiI.Dtype != loaders.DtypeFloat32 {
		return bsdf.Measured{}, fmt.Errorf("invalid tensor file: bad phi_i")
	}
	ndf, ok := tf.Fields["ndf"]
	if !ok || len(ndf.Shape) != 2 || ndf.Dtype != loaders.DtypeFloat32 {
		return bsdf.Measured{}, fmt.Errorf("invalid tensor file: bad ndf")
	}
	sigma, ok := tf.Fields["sigma"]
	if !ok || len(sigma.Shape) != 2 || sigma.Dtype != loaders.DtypeFloat32 {
		return bsdf.Measured{}, fmt.Errorf("invalid tensor file: bad sigma")
	}
	vndf, ok := tf.Fields["vndf"]
	if !ok || len(vndf.Shape) != 4 || vndf.Dtype != loaders.DtypeFloat32 ||
		vndf.Shape[0] != phiI.Shape[0] || vndf.Shape[1] != thetaI.Shape[0] {
		return bsdf.Measured{}, fmt.Errorf("invalid tensor file: bad vndf")
	}
	luminance, ok := tf.Fields["luminance"]
	if !ok || len(luminance.Shape) != 4 || luminance.Dtype != loaders.DtypeFloat32 ||
		luminance.Shape[0] != phiI.Shape[0] || luminance.Shape[1] != thetaI.Shape[0] ||
		luminance.Shape[2] != luminance.Shape[3] {
		return bsdf.Measured{}, fmt.Errorf("invalid tensor file: bad luminance")
	}
	rgb, ok := tf.Fields["rgb"]
	if !ok || len(rgb.Shape) != 5 || rgb.Dtype != loaders.DtypeFloat32 ||
		rgb.Shape[0] != phiI.Shape[0] || rgb.Shape[1] != thetaI.Shape[0] ||
		rgb.Shape[2] != 3 || rgb.Shape[3] != luminance.Shape[2] {
		return bsdf.Measured{}, fmt.Errorf("invalid tensor file: bad rgb")
	}
	jacobian, ok := tf.Fields["jacobian"]
	if !ok || len(jacobian.Shape) != 1 || jacobian.Shape[0] != 1 || jacobian.Dtype != loaders.DtypeUInt8 {
		return bsdf.Measured{}, fmt.Errorf("invalid tensor file: bad jacobian")
	}
	if _, ok := tf.Fields["description"]; !ok {
		return bsdf.Measured{}, fmt.Errorf("invalid tensor file: missing description")
	}

	isotropic := phiI.Shape[0] <= 2

	phiIData, err := phiI.Float32s()
	if err != nil {
		return bsdf.Measured{}, err
	}
	thetaIData, err := thetaI.Float32s()
	if err != nil {
		return bsdf.Measured{}, err
	}

	ndfData, err := ndf.Float32s()
	if err != nil {
		return bsdf.Measured{}, err
	}
	sigmaData, err := sigma.Float32s()
	if err != nil {
		return bsdf.Measured{}, err
	}
	vndfData, err := vndf.Float32s()
	if err != nil {
		return bsdf.Measured{}, err
	}
	luminanceData, err := luminance.Float32s()
	if err != nil {
		return bsdf.Measured{}, err
	}
	rgbData, err := rgb.Float32s()
	if err != nil {
		return bsdf.Measured{}, err
	}

	ndfWarp := warp.NewMarginal2D([2]int{ndf.Shape[1], ndf.Shape[0]}, ndfData, nil, false, false)
	sigmaWarp := warp.NewMarginal2D([2]int{sigma.Shape[1], sigma.Shape[0]}, sigmaData, nil, false, false)
	vndfWarp := warp.NewMarginal2D([2]int{vndf.Shape[3], vndf.Shape[2]}, vndfData, [][]float64{phiIData, thetaIData}, true, true)
	luminanceWarp := warp.NewMarginal2D([2]int{luminance.Shape[3], luminance.Shape[2]}, luminanceData, [][]float64{phiIData, thetaIData}, true, true)
	rgbWarp := warp.NewMarginal2D([2]int{rgb.Shape[4], rgb.Shape[3]}, rgbData, [][]float64{phiIData, thetaIData, {0, 1, 2}}, false, false)

	return bsdf.Measured{Data: &bsdf.MeasuredData{
		NDF:       ndfWarp,
		Sigma:     sigmaWarp,
		VNDF:      vndfWarp,
		Luminance: luminanceWarp,
		RGB:       rgbWarp,
		Isotropic: isotropic,
	}}, nil
}
