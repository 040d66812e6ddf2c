package k8s

import (
	"time"

	appsv1 "k8s.io/api/apps/v1"
	corev1 "k8s.io/api/core/v1"
	"k8s.io/client-go/kubernetes"

	"github.com/chris-milsted/lkeup/internal/model"
)

func newFakeClient(cs kubernetes.Interface) *Client {
	return &Client{Clientset: cs, pollInterval: time.Millisecond}
}

func testApp() model.AppSpec {
	return model.AppSpec{
		Name:          "springboot-app",
		Namespace:     "springboot-app",
		Image:         "ghcr.io/example/springboot-app:1.0.0",
		Replicas:      2,
		ContainerPort: 8080,
		ServicePort:   80,
		HealthPath:    "/actuator/health",
		Resources: model.Resources{
			CPURequest:    "250m",
			MemoryRequest: "256Mi",
			CPULimit:      "500m",
			MemoryLimit:   "512Mi",
		},
		Readiness: model.Probe{InitialDelaySeconds: 30, PeriodSeconds: 5},
		Liveness:  model.Probe{InitialDelaySeconds: 60, PeriodSeconds: 10},
	}
}

func readyDeployment(app model.AppSpec) *appsv1.Deployment {
	deployment, err := BuildDeployment(app)
	if err != nil {
		panic(err)
	}
	deployment.Status = appsv1.DeploymentStatus{
		Replicas:          app.Replicas,
		UpdatedReplicas:   app.Replicas,
		AvailableReplicas: app.Replicas,
		Conditions: []appsv1.DeploymentCondition{
			{Type: appsv1.DeploymentAvailable, Status: corev1.ConditionTrue},
		},
	}
	return deployment
}
